// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package scpi

import "sync"

// Arbiter tracks instrument addresses already claimed by a composition of
// connections, so multiple identical instruments can be attached one by
// one. It is owned by whatever wires the instruments together and passed by
// reference, not a process-wide singleton.
type Arbiter struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewArbiter creates an empty arbiter.
func NewArbiter() *Arbiter {
	return &Arbiter{used: make(map[string]bool)}
}

// Claim marks addr as in use. It returns false if addr was already claimed.
func (a *Arbiter) Claim(addr string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.used[addr] {
		return false
	}
	a.used[addr] = true
	return true
}

// Release frees addr for future claims.
func (a *Arbiter) Release(addr string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.used, addr)
}

// Claimed reports whether addr is currently claimed.
func (a *Arbiter) Claimed(addr string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used[addr]
}
