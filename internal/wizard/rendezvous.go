package wizard

import "sync"

// Party is one side of the startup handshake.
type Party int

const (
	// PartyManifest arrives when the manifest fetch has finished, successfully or not.
	PartyManifest Party = iota
	// PartySurface arrives when the screen is open and the loading step is showing.
	PartySurface
)

// Rendezvous fires ready exactly once after both parties have arrived, in either order.
type Rendezvous struct {
	mu      sync.Mutex
	arrived map[Party]bool
	fired   bool
	ready   func()
}

// NewRendezvous returns a Rendezvous that calls ready when complete.
func NewRendezvous(ready func()) *Rendezvous {
	return &Rendezvous{arrived: make(map[Party]bool, 2), ready: ready}
}

// Arrive records p. Repeat arrivals of the same party are ignored.
func (r *Rendezvous) Arrive(p Party) {
	r.mu.Lock()
	r.arrived[p] = true
	fire := !r.fired && r.arrived[PartyManifest] && r.arrived[PartySurface]
	if fire {
		r.fired = true
	}
	r.mu.Unlock()

	if fire && r.ready != nil {
		r.ready()
	}
}

// Done reports whether ready has been called.
func (r *Rendezvous) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}
