// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package scpi implements the textual command layer for bench instruments:
// connections over raw TCP sockets or serial ports, command/query helpers,
// IEEE-488.2 binary block parsing, and thin drivers for the analyzer,
// generator, and supply used on the DTRC bench.
package scpi

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

// DefaultTimeout bounds each command/query round trip on network
// connections.
const DefaultTimeout = 5 * time.Second

// RawSocketPort is the conventional SCPI raw-socket port.
const RawSocketPort = 5025

// Conn is a textual SCPI connection over a byte stream.
type Conn struct {
	rw      io.ReadWriteCloser
	r       *bufio.Reader
	net     net.Conn // non-nil for TCP connections; enables deadlines
	addr    string
	timeout time.Duration
}

// Dial opens a raw-socket SCPI connection. addr is "host:port"; a bare host
// gets the conventional port 5025.
func Dial(addr string, timeout time.Duration) (*Conn, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, RawSocketPort)
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to instrument at %s: %w", addr, err)
	}

	return &Conn{
		rw:      conn,
		r:       bufio.NewReader(conn),
		net:     conn,
		addr:    addr,
		timeout: timeout,
	}, nil
}

// OpenSerial opens a SCPI connection over a serial port (RS-232 instrument
// front ends).
func OpenSerial(portName string, baudRate int) (*Conn, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	return &Conn{
		rw:      port,
		r:       bufio.NewReader(port),
		addr:    portName,
		timeout: DefaultTimeout,
	}, nil
}

// NewConn wraps an existing byte stream (used by tests with in-memory
// pipes).
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{
		rw:      rw,
		r:       bufio.NewReader(rw),
		timeout: DefaultTimeout,
	}
}

// Addr returns the resource address this connection was opened against.
func (c *Conn) Addr() string {
	return c.addr
}

// Close releases the underlying stream.
func (c *Conn) Close() error {
	return c.rw.Close()
}

func (c *Conn) deadline() {
	if c.net != nil {
		_ = c.net.SetDeadline(time.Now().Add(c.timeout))
	}
}

// Command sends a SCPI command that produces no reply.
func (c *Conn) Command(cmd string) error {
	c.deadline()
	if _, err := c.rw.Write([]byte(cmd + "\n")); err != nil {
		return fmt.Errorf("write %q: %w", cmd, err)
	}
	return nil
}

// Query sends a SCPI query and returns the trimmed textual reply.
func (c *Conn) Query(cmd string) (string, error) {
	if err := c.Command(cmd); err != nil {
		return "", err
	}
	c.deadline()
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply to %q: %w", cmd, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// QueryFloat sends a query and parses the reply as a float64.
func (c *Conn) QueryFloat(cmd string) (float64, error) {
	reply, err := c.Query(cmd)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("parse reply %q to %q: %w", reply, cmd, err)
	}
	return v, nil
}

// QueryBinary sends a query whose reply is an IEEE-488.2 definite-length
// block and returns the payload bytes with the header stripped.
func (c *Conn) QueryBinary(cmd string) ([]byte, error) {
	if err := c.Command(cmd); err != nil {
		return nil, err
	}
	c.deadline()
	return ReadBlock(c.r)
}

// Idn returns the instrument identification string (*IDN?).
func (c *Conn) Idn() (string, error) {
	return c.Query("*IDN?")
}

// Reset issues *RST.
func (c *Conn) Reset() error {
	return c.Command("*RST")
}

// ClearStatus issues *CLS.
func (c *Conn) ClearStatus() error {
	return c.Command("*CLS")
}

// WaitComplete blocks until the instrument reports operation complete
// (*OPC?).
func (c *Conn) WaitComplete() error {
	reply, err := c.Query("*OPC?")
	if err != nil {
		return err
	}
	if strings.TrimSpace(reply) != "1" {
		return fmt.Errorf("unexpected *OPC? reply %q", reply)
	}
	return nil
}
