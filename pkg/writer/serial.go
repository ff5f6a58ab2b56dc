// Serial port writer
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package writer

import (
	"fmt"

	"gscrib/pkg/log"
	"gscrib/pkg/serial"
)

// SerialWriter streams G-code statements to a machine controller
// over a serial port. Responses are single "ok"-style lines read
// back from the controller.
type SerialWriter struct {
	device   string
	baudRate int
	port     *serial.Port
	logger   *log.Logger
}

// NewSerialWriter creates a writer for the given device path and
// baud rate
func NewSerialWriter(device string, baudRate int) *SerialWriter {
	return &SerialWriter{
		device:   device,
		baudRate: baudRate,
		logger:   log.New("serial"),
	}
}

// Connect opens the serial port
func (w *SerialWriter) Connect() error {
	cfg := serial.DefaultConfig()
	cfg.Device = w.device
	cfg.BaudRate = w.baudRate

	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("writer: %w", err)
	}

	w.port = port
	w.logger.Info("connected", log.Fields{
		"device": w.device,
		"baud":   w.baudRate,
	})
	return nil
}

// Disconnect flushes pending output and closes the port
func (w *SerialWriter) Disconnect(wait bool) error {
	if w.port == nil {
		return nil
	}

	if !wait {
		if err := w.port.Flush(); err != nil {
			w.logger.Warn("flush failed", log.Fields{"error": err})
		}
	}

	err := w.port.Close()
	w.port = nil
	w.logger.Info("disconnected")
	return err
}

// Write sends a statement and optionally reads the controller's
// response line
func (w *SerialWriter) Write(data []byte, requiresResponse bool) (string, error) {
	if w.port == nil {
		if err := w.Connect(); err != nil {
			return "", err
		}
	}

	if _, err := w.port.Write(data); err != nil {
		return "", fmt.Errorf("writer: send: %w", err)
	}

	if !requiresResponse {
		return "", nil
	}

	response, err := w.port.ReadLine()
	if err != nil {
		return "", fmt.Errorf("writer: read response: %w", err)
	}

	return response, nil
}
