package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn    *websocket.Conn
	channel string

	// R receives inbound text messages until the connection closes.
	R chan []byte

	send chan []byte
}

func NewClient(conn *websocket.Conn, channel string) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		conn:    conn,
		channel: channel,
		R:       make(chan []byte, 128),
		send:    make(chan []byte, 128),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) Channel() string {
	return c.channel
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}

	c.conn.Close()
}

// Write queues a message for this client. It recovers the panic of sending
// on the closed send channel after a disconnect.
func (c *Client) Write(msg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("connection is closed")
		}
	}()

	c.send <- msg
	return nil
}
