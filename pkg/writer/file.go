// File output writer
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package writer

import (
	"fmt"
	"io"
	"os"
)

// FileWriter writes G-code statements to a file or any io.Writer.
// When constructed from a path the file is created on first write
// and closed on disconnect; wrapped writers are left open since the
// caller owns them.
type FileWriter struct {
	path string
	dest io.Writer
	file *os.File
}

// NewFileWriter creates a writer that outputs to the file at path
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// NewStreamWriter creates a writer that outputs to an existing
// stream, such as os.Stdout or a buffer
func NewStreamWriter(dest io.Writer) *FileWriter {
	return &FileWriter{dest: dest}
}

// Connect opens the output file when the writer was constructed
// from a path
func (w *FileWriter) Connect() error {
	if w.path == "" || w.file != nil {
		return nil
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("writer: create %s: %w", w.path, err)
	}

	w.file = file
	w.dest = file
	return nil
}

// Disconnect closes the file if this writer opened it
func (w *FileWriter) Disconnect(wait bool) error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil
	w.dest = nil
	return err
}

// Write appends a statement to the output
func (w *FileWriter) Write(data []byte, requiresResponse bool) (string, error) {
	if w.dest == nil {
		if err := w.Connect(); err != nil {
			return "", err
		}
	}

	if _, err := w.dest.Write(data); err != nil {
		return "", fmt.Errorf("writer: write: %w", err)
	}

	return "", nil
}
