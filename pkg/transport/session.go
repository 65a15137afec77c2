// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package transport owns the UDP session used to deliver control packets to
// the board. The path is send-only: no reply is read for measurement
// packets.
package transport

import (
	"fmt"
	"net"
	"sync"
)

// Default endpoints for the DTRC board on the bench network.
const (
	DefaultLocalAddr  = "192.168.1.5:6005"
	DefaultRemoteAddr = "192.168.1.10:5005"
)

// Session is one bound UDP socket with a fixed destination. It satisfies
// the sequencer's Sender capability. Close is idempotent.
type Session struct {
	conn *net.UDPConn
	dest *net.UDPAddr

	mu     sync.Mutex
	closed bool
}

// Open binds a UDP socket on localAddr and fixes remoteAddr as the
// destination for every Send.
func Open(localAddr, remoteAddr string) (*Session, error) {
	laddr, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid local address %q: %w", localAddr, err)
	}
	raddr, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address %q: %w", remoteAddr, err)
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", localAddr, err)
	}

	return &Session{conn: conn, dest: raddr}, nil
}

// Send transmits one packet to the session destination and returns the byte
// count written.
func (s *Session) Send(packet []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("transport session is closed")
	}
	return s.conn.WriteToUDP(packet, s.dest)
}

// Close releases the socket. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// LocalAddr returns the bound local address.
func (s *Session) LocalAddr() string {
	return s.conn.LocalAddr().String()
}

// RemoteAddr returns the fixed destination address.
func (s *Session) RemoteAddr() string {
	return s.dest.String()
}
