package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Client connects one websocket to one session. ReadPump is the only
// goroutine that touches the session; WritePump only drains the send queue.
type Client struct {
	conn    *websocket.Conn
	session *Session
	send    chan []byte
	logger  *slog.Logger
}

func NewClient(conn *websocket.Conn, s *Session) *Client {
	return &Client{
		conn:    conn,
		session: s,
		send:    make(chan []byte, 256),
		logger:  s.logger,
	}
}

// ReadPump applies messages in arrival order and queues a frame or an error
// for each. It returns when the connection closes and then stops WritePump.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	if msg, err := c.session.Welcome(); err == nil {
		c.Send(msg)
	}

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.logger.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("invalid message", "error", err)
			continue
		}

		frame, err := c.session.Apply(&msg)
		if err != nil {
			c.logger.Warn("message failed", "error", err, "type", msg.Type, "seq", msg.Seq)
			c.Send(c.session.ErrorMessage(msg.Seq, err))
			continue
		}
		frame.Seq = msg.Seq
		c.Send(frame)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg, dropping it when the client is not keeping up.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("client send buffer full, dropping message", "type", msg.Type)
	}
}
