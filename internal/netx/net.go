// Package netx provides the network-reachability signal the durability
// layer observes.
package netx

import (
	"context"
	"net"
	"time"
)

const dialTimeout = 3 * time.Second

// Prober reports point-in-time network reachability.
type Prober interface {
	// Online returns true if the network is currently reachable.
	Online(ctx context.Context) bool
}

// DialProber probes reachability by opening a TCP connection to Addr
// (host:port). A successful dial means online.
type DialProber struct {
	Addr string
}

func NewDialProber(addr string) *DialProber {
	return &DialProber{Addr: addr}
}

func (p *DialProber) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// StaticProber always reports the configured state. Used in tests and for
// forcing offline mode.
type StaticProber struct {
	IsOnline bool
}

func (p *StaticProber) Online(context.Context) bool {
	return p.IsOnline
}
