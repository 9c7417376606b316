package ws

// Hub maintains the set of active clients per channel and broadcasts
// messages to them. All map access happens on the Run goroutine.

type clients map[*Client]bool

type broadcastMsg struct {
	channel string
	msg     []byte
}

type Hub struct {
	clients  clients
	channels map[string]clients

	// Inbound messages from the clients.
	broadcast chan broadcastMsg

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan broadcastMsg),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		channels:   make(map[string]clients),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if _, ok := h.channels[client.channel]; !ok {
				h.channels[client.channel] = make(clients)
			}
			h.channels[client.channel][client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}
		case b := <-h.broadcast:
			for client := range h.channels[b.channel] {
				select {
				case client.send <- b.msg:
				default:
					h.disconnect(client)
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastByChannel(channel string, message []byte) {
	h.broadcast <- broadcastMsg{channel: channel, msg: message}
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	delete(h.channels[client.channel], client)
	close(client.send)
}
