package ekfweb

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Room fans channel snapshots out to all connected websocket clients.
type Room struct {
	// forward holds incoming messages that should be forwarded to all
	// clients.
	forward chan []byte
	// join is a channel for clients wishing to join the room.
	join chan *client
	// leave is a channel for clients wishing to leave the room.
	leave chan *client
	// clients holds all current clients in this room.
	clients map[*client]bool
}

// NewRoom makes a new room that is ready to go.
func NewRoom() *Room {
	return &Room{
		forward: make(chan []byte, messageBufferSize),
		join:    make(chan *client),
		leave:   make(chan *client),
		clients: make(map[*client]bool),
	}
}

// Broadcast marshals one snapshot and queues it for all clients.
func (r *Room) Broadcast(data *ChannelData) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("EKFWeb: couldn't marshal channel data:", err)
		return
	}
	r.forward <- msg
}

// Run services joins, leaves and forwarded messages until the process
// exits.
func (r *Room) Run() {
	for {
		select {
		case client := <-r.join:
			r.clients[client] = true
			log.Println("EKFWeb: new client joined")
		case client := <-r.leave:
			delete(r.clients, client)
			close(client.send)
			log.Println("EKFWeb: client left")
		case msg := <-r.forward:
			for client := range r.clients {
				select {
				case client.send <- msg:
				default:
					// client too slow, drop the frame
				}
			}
		}
	}
}

const (
	socketBufferSize  = 1024
	messageBufferSize = 16
)

var upgrader = &websocket.Upgrader{ReadBufferSize: socketBufferSize, WriteBufferSize: socketBufferSize}

func (r *Room) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	socket, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Println("EKFWeb: upgrade failed:", err)
		return
	}
	client := &client{
		socket: socket,
		send:   make(chan []byte, messageBufferSize),
		room:   r,
	}
	r.join <- client
	defer func() { r.leave <- client }()
	go client.write()
	client.read()
}
