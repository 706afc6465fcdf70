// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"zombiezen.com/go/log"
)

const writeTimeout = 10 * time.Second

// A hub upgrades requests on /watch to websockets and fans broadcast
// messages out to every connected client. Broadcasts happen from a single
// goroutine, satisfying the one-writer rule for websocket connections.
type hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	lastMsg []byte
}

func newHub() *hub {
	return &hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/watch" {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf(r.Context(), "upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	log.Infof(r.Context(), "client connected: %s", r.RemoteAddr)

	// Send the current snapshot before joining the broadcast set, so the
	// write cannot race a concurrent broadcast.
	h.mu.Lock()
	last := h.lastMsg
	h.mu.Unlock()
	if last != nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, last); err != nil {
			log.Warnf(r.Context(), "write to %s: %v", r.RemoteAddr, err)
			conn.Close()
			return
		}
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Clients have nothing to say; the read loop exists to notice
	// disconnects and answer control frames.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast sends msg to every connected client and remembers it for
// clients that connect later. Clients whose writes fail are dropped.
func (h *hub) broadcast(ctx context.Context, msg []byte) {
	h.mu.Lock()
	h.lastMsg = msg
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warnf(ctx, "write to client: %v", err)
			h.drop(conn)
		}
	}
}

// closeAll tells every client the server is going away and disconnects
// them. WriteControl is safe to call concurrently with other writes.
func (h *hub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	for _, conn := range conns {
		conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeTimeout))
		h.drop(conn)
	}
}
