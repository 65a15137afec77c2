// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package transport

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestSessionSend(t *testing.T) {
	receiver, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to bind receiver: %v", err)
	}
	defer receiver.Close()

	session, err := Open("127.0.0.1:0", receiver.LocalAddr().String())
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	defer session.Close()

	packet := []byte{0x00, 0xAB, 0xAB, 0x06, 0x20}
	n, err := session.Send(packet)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if n != len(packet) {
		t.Errorf("sent %d bytes, want %d", n, len(packet))
	}

	receiver.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64)
	rn, _, err := receiver.ReadFrom(buf)
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if !bytes.Equal(buf[:rn], packet) {
		t.Errorf("received % X, want % X", buf[:rn], packet)
	}

	if session.RemoteAddr() != receiver.LocalAddr().String() {
		t.Errorf("RemoteAddr = %q, want %q", session.RemoteAddr(), receiver.LocalAddr().String())
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	session, err := Open("127.0.0.1:0", "127.0.0.1:5005")
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	if err := session.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second close returned error: %v", err)
	}

	if _, err := session.Send([]byte{0x01}); err == nil {
		t.Error("send on closed session succeeded")
	}
}

func TestOpenBadAddresses(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		remote string
	}{
		{"bad local", "not-an-address:x", "127.0.0.1:5005"},
		{"bad remote", "127.0.0.1:0", "not-an-address:x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.local, tt.remote); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
