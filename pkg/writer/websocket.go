// Websocket writer
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package writer

import (
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"gscrib/pkg/log"
)

// WebSocketWriter streams G-code statements to printer web
// interfaces that accept raw G-code over a websocket. Each
// statement is sent as one text message; responses come back as
// text messages.
type WebSocketWriter struct {
	url    string
	conn   *websocket.Conn
	logger *log.Logger
}

// NewWebSocketWriter creates a writer that connects to the given
// websocket URL (e.g. ws://printer.local:7125/websocket)
func NewWebSocketWriter(url string) *WebSocketWriter {
	return &WebSocketWriter{
		url:    url,
		logger: log.New("websocket"),
	}
}

// Connect dials the websocket endpoint
func (w *WebSocketWriter) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(w.url, nil)
	if err != nil {
		return fmt.Errorf("writer: dial %s: %w", w.url, err)
	}

	w.conn = conn
	w.logger.Info("connected", log.Fields{"url": w.url})
	return nil
}

// Disconnect sends a close frame and tears down the connection
func (w *WebSocketWriter) Disconnect(wait bool) error {
	if w.conn == nil {
		return nil
	}

	if wait {
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := w.conn.WriteMessage(websocket.CloseMessage, message); err != nil {
			w.logger.Warn("close frame failed", log.Fields{"error": err})
		}
	}

	err := w.conn.Close()
	w.conn = nil
	w.logger.Info("disconnected")
	return err
}

// Write sends a statement as a text message and optionally waits
// for the reply
func (w *WebSocketWriter) Write(data []byte, requiresResponse bool) (string, error) {
	if w.conn == nil {
		if err := w.Connect(); err != nil {
			return "", err
		}
	}

	if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return "", fmt.Errorf("writer: send: %w", err)
	}

	if !requiresResponse {
		return "", nil
	}

	_, response, err := w.conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("writer: read response: %w", err)
	}

	return strings.TrimRight(string(response), "\r\n"), nil
}
