// Package store provides the record store the business services run against:
// insert, update, delete and query by predicate over named collections.
// Services never see persistence-engine vocabulary; predicates are plain
// field-equality maps.
package store

import (
	"context"
	"errors"
)

// Filter matches documents whose fields equal the given values.
type Filter map[string]interface{}

// Fields is the set of field values written by an update.
type Fields map[string]interface{}

var ErrNoDocuments = errors.New("store: no matching documents")

type Store interface {
	Insert(ctx context.Context, collection string, doc interface{}) error
	// FindOne decodes the first matching document into out, or returns
	// ErrNoDocuments.
	FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error
	// FindAll decodes every matching document into out, which must be a
	// pointer to a slice. A nil filter matches everything.
	FindAll(ctx context.Context, collection string, filter Filter, out interface{}) error
	// UpdateOne sets fields on the first matching document and reports how
	// many documents matched.
	UpdateOne(ctx context.Context, collection string, filter Filter, set Fields) (int64, error)
	// DeleteOne removes the first matching document and reports how many
	// documents were removed.
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}
