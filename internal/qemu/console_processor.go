// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ConsoleProcessor reads guest console output from a pipe and writes it into
// a host log file. The write end of the pipe is attached to the QEMU process
// as an additional file descriptor.
type ConsoleProcessor struct {
	name      string
	writePipe *os.File
	readPipe  io.ReadCloser
	output    io.WriteCloser
}

// NewConsoleProcessor creates a new ConsoleProcessor that writes into a file
// with the given path. The file is created or truncated, if it exists.
func NewConsoleProcessor(logFile string) (*ConsoleProcessor, error) {
	readPipe, writePipe, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	output, err := os.Create(logFile)
	if err != nil {
		_ = readPipe.Close()
		_ = writePipe.Close()

		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &ConsoleProcessor{
		name:      logFile,
		writePipe: writePipe,
		readPipe:  readPipe,
		output:    output,
	}, nil
}

// Writer returns the writer end of the [os.Pipe].
func (p *ConsoleProcessor) Writer() *os.File {
	return p.writePipe
}

// Close closes all file descriptors.
func (p *ConsoleProcessor) Close() {
	_ = p.writePipe.Close()
	_ = p.readPipe.Close()
	_ = p.output.Close()
}

// CloseWriter closes only the write end of the pipe, terminating
// [ConsoleProcessor.Run] once all buffered data is drained.
func (p *ConsoleProcessor) CloseWriter() {
	_ = p.writePipe.Close()
}

// Run processes the input. It blocks and returns once [io.EOF] is received,
// which happens when [ConsoleProcessor.Writer] is closed.
func (p *ConsoleProcessor) Run() error {
	buf := make([]byte, 256)

	var total int

	for {
		n, err := p.readPipe.Read(buf)
		if err != nil {
			if err == io.EOF { //nolint:errorlint
				slog.Debug("Console output written",
					slog.String("path", p.name),
					slog.Int("bytes", total))

				return nil
			}

			return &ConsoleError{Name: p.name, Err: err}
		}

		total += n

		// Remove carriage returns from the byte stream. The UEFI consoles
		// terminate lines with CRLF.
		_, err = p.output.Write(bytes.ReplaceAll(buf[:n], []byte("\r"), nil))
		if err != nil {
			return &ConsoleError{Name: p.name, Err: err}
		}
	}
}
