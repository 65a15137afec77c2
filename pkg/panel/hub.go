// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package panel

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/radialab/sweepbench/pkg/logger"
	"github.com/radialab/sweepbench/pkg/sweep"
)

// clientQueueSize bounds the per-client frame queue. A slow consumer loses
// the oldest frames rather than stalling the sequencer.
const clientQueueSize = 64

// Hub fans progress events out to websocket clients. It implements
// sweep.Sink; Notify never blocks on a slow consumer and never lets a
// client failure reach the sequencer.
type Hub struct {
	mu      sync.Mutex
	clients map[*hubClient]struct{}
	log     logger.Logger
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewHub creates an empty hub.
func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients: make(map[*hubClient]struct{}),
		log:     log,
	}
}

// Notify implements sweep.Sink: encode once, enqueue to every client.
func (h *Hub) Notify(e sweep.Event) {
	frame, err := EncodeEvent(e)
	if err != nil {
		h.log.Error("failed to encode progress event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// Queue full: drop the oldest frame to make room.
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- frame:
			default:
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// attach registers a websocket connection and starts its write pump. The
// pump exits (and the client detaches) when the connection fails or the
// send channel closes.
func (h *Hub) attach(conn *websocket.Conn) *hubClient {
	c := &hubClient{
		conn: conn,
		send: make(chan []byte, clientQueueSize),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	return c
}

// detach removes the client and closes both its connection and its send
// channel, so the write pump drains and exits rather than blocking forever
// on a queue nobody feeds. Notify only sees clients still in the map, and
// the map delete happens under the same lock, so no send can race the close.
func (h *Hub) detach(c *hubClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// writePump exits when the connection fails or detach closes the send
// channel.
func (h *Hub) writePump(c *hubClient) {
	defer h.detach(c)
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			h.log.Debug("panel client write failed", "error", err)
			return
		}
	}
}
