package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	feedClients = make(map[*websocket.Conn]bool) // Connected feed subscribers
	broadcast   = make(chan FeedEvent)           // Broadcast channel for new feed entries
	mutex       sync.Mutex                       // Mutex to protect feedClients map
)

// FeedEvent is a rendered feed row pushed to websocket subscribers
type FeedEvent struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// RegisterClient adds a WebSocket client to the feed subscribers
func RegisterClient(conn *websocket.Conn) {
	mutex.Lock()
	feedClients[conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from the feed subscribers
func UnregisterClient(conn *websocket.Conn) {
	mutex.Lock()
	delete(feedClients, conn)
	mutex.Unlock()
}

// BroadcastFeedEvent sends a new feed entry to all connected clients
func BroadcastFeedEvent(event FeedEvent) {
	broadcast <- event
}

func handleBroadcast() {
	for {
		event := <-broadcast
		mutex.Lock()
		for client := range feedClients {
			if err := client.WriteJSON(event); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(feedClients, client)
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
