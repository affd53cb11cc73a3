package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory keeps collections in process memory. It backs tests and the
// no-Mongo development mode; documents are stored as bson maps so that
// encoding behaves the same as the Mongo store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]bson.M)}
}

func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func matches(doc bson.M, filter Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false
		}
		// Values coming through bson lose their original Go types
		// (int becomes int32/int64 and so on), so compare through a
		// bson round trip of the filter value.
		norm, err := toDoc(bson.M{"v": want})
		if err != nil {
			return false
		}
		if !reflect.DeepEqual(got, norm["v"]) {
			return false
		}
	}
	return true
}

func (m *Memory) Insert(ctx context.Context, collection string, doc interface{}) error {
	stored, err := toDoc(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], stored)
	return nil
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			return decodeDoc(doc, out)
		}
	}
	return ErrNoDocuments
}

func (m *Memory) FindAll(ctx context.Context, collection string, filter Filter, out interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, 0)
	for _, doc := range m.collections[collection] {
		if filter != nil && !matches(doc, filter) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}

func (m *Memory) UpdateOne(ctx context.Context, collection string, filter Filter, set Fields) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		norm, err := toDoc(bson.M(set))
		if err != nil {
			return 0, err
		}
		for field, value := range norm {
			doc[field] = value
		}
		return 1, nil
	}
	return 0, nil
}

func (m *Memory) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, doc := range m.collections[collection] {
		if filter == nil || matches(doc, filter) {
			n++
		}
	}
	return n, nil
}
