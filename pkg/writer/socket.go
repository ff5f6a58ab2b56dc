// TCP socket writer
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package writer

import (
	"bufio"
	"fmt"
	"net"

	"gscrib/pkg/log"
)

// SocketWriter streams G-code statements to a remote machine over a
// TCP connection. Responses are framed as single lines whose first
// byte is '%'; anything else is reported as a device failure.
type SocketWriter struct {
	host            string
	port            int
	waitForResponse bool
	conn            net.Conn
	reader          *bufio.Reader
	logger          *log.Logger
}

// NewSocketWriter creates a writer that connects to host:port. When
// waitForResponse is set, every statement waits for the device's
// acknowledgment line.
func NewSocketWriter(host string, port int, waitForResponse bool) *SocketWriter {
	return &SocketWriter{
		host:            host,
		port:            port,
		waitForResponse: waitForResponse,
		logger:          log.New("socket"),
	}
}

// Connect establishes the TCP connection
func (w *SocketWriter) Connect() error {
	address := net.JoinHostPort(w.host, fmt.Sprintf("%d", w.port))

	conn, err := net.Dial("tcp", address)
	if err != nil {
		return fmt.Errorf("writer: connect %s: %w", address, err)
	}

	w.conn = conn
	w.reader = bufio.NewReader(conn)
	w.logger.Info("connected", log.Fields{"address": address})
	return nil
}

// Disconnect closes the connection if it is open
func (w *SocketWriter) Disconnect(wait bool) error {
	if w.conn == nil {
		return nil
	}

	err := w.conn.Close()
	w.conn = nil
	w.reader = nil
	w.logger.Info("disconnected")
	return err
}

// Write sends a statement and optionally reads the response
func (w *SocketWriter) Write(data []byte, requiresResponse bool) (string, error) {
	if w.conn == nil {
		if err := w.Connect(); err != nil {
			return "", err
		}
	}

	if _, err := w.conn.Write(data); err != nil {
		return "", fmt.Errorf("writer: send: %w", err)
	}

	if !w.waitForResponse && !requiresResponse {
		return "", nil
	}

	response, err := w.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("writer: read response: %w", err)
	}

	if len(response) == 0 || response[0] != '%' {
		return "", fmt.Errorf("writer: unexpected response %q", response)
	}

	return response[1 : len(response)-1], nil
}
