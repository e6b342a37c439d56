// Package stale guards against late responses overwriting newer state.
// Each logical resource (a page's list, the master-data bundle) owns one
// Guard; every request takes a ticket and a response is applied only if
// its ticket is still the latest issued.
package stale

import "sync/atomic"

type Guard struct {
	seq atomic.Uint64
}

// Next issues a ticket for a new request, superseding all earlier ones.
func (g *Guard) Next() uint64 {
	return g.seq.Add(1)
}

// Latest reports whether ticket is still the newest issued. A false
// result means the response belongs to a superseded request and must be
// discarded.
func (g *Guard) Latest(ticket uint64) bool {
	return g.seq.Load() == ticket
}
