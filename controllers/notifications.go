package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var clients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		clients[conn] = true
		mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				mu.Lock()
				delete(clients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

// notifyOrderCreated tells connected terminals a new order was opened.
func notifyOrderCreated(orderID, tableID string) {
	sendMessageToAllClients(Message{
		Event: "newOrder",
		Payload: gin.H{
			"order_id": orderID,
			"table_id": tableID,
		},
	})
}

// notifyTableStatus pushes the table's current status to all terminals.
func notifyTableStatus(ctx context.Context, tableID string) {
	status, err := tableService.Status(ctx, tableID)
	if err != nil {
		log.Println("table status lookup failed:", err)
		return
	}
	sendMessageToAllClients(Message{
		Event: "tableStatus",
		Payload: gin.H{
			"table_id": tableID,
			"status":   status,
		},
	})
}

// notifyBillPaid announces a settled bill so floor staff see the table free up.
func notifyBillPaid(ctx context.Context, billID string) {
	bill, err := billingService.Get(ctx, billID)
	if err != nil {
		log.Println("bill lookup failed:", err)
		return
	}
	sendMessageToAllClients(Message{
		Event: "billPaid",
		Payload: gin.H{
			"bill_id":  billID,
			"order_id": bill.Order_id,
			"total":    bill.Total,
		},
	})
}

func sendMessageToAllClients(message Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Println("error marshaling message:", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()
	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			log.Println("error writing message:", err)
			client.Close()
			delete(clients, client)
		}
	}
}
