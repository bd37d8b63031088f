package ws

// Hub bertanggung jawab untuk:
// menyimpan koneksi client admin yang sedang membuka console,
// menerima notifikasi dari controller entity,
// dan meneruskannya ke client yang berlangganan topik tersebut.

import (
	"context"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const sendBuffer = 256

// Client mewakili koneksi WebSocket. Topic kosong berarti menerima semua
// pesan.
type Client struct {
	Conn  *websocket.Conn
	Send  chan []byte
	Topic string
}

// Message adalah satu pesan yang akan di-broadcast.
type Message struct {
	Topic   string
	Payload []byte
}

// Hub mengelola semua koneksi client. Semua perubahan map clients hanya
// terjadi di goroutine Run.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "ws").Logger(),
	}
}

// Run memproses register, unregister dan broadcast sampai ctx selesai.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			h.logger.Debug().Str("topic", client.Topic).Msg("client registered")
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.logger.Debug().Msg("client unregistered")
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.Topic != "" && client.Topic != msg.Topic {
					continue
				}
				select {
				case client.Send <- msg.Payload:
				default:
					// Client terlalu lambat, putuskan.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.count.Add(-1)
}

// Publish mengantrikan payload untuk topic tanpa menunggu. Pesan dibuang
// jika antrean penuh.
func (h *Hub) Publish(topic string, payload []byte) bool {
	select {
	case h.broadcast <- Message{Topic: topic, Payload: payload}:
		return true
	default:
		h.logger.Warn().Str("topic", topic).Msg("broadcast queue full, message dropped")
		return false
	}
}

// Clients mengembalikan jumlah client yang terhubung.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}
