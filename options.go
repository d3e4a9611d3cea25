package lldpd

import (
	"time"

	"github.com/pkg/errors"

	"github.com/extrame/lldpagent/lldpdu"
)

const (
	// DefaultInterval is the announce period.
	DefaultInterval = time.Second
	// DefaultTTL is how long neighbors keep our announcement, in seconds.
	DefaultTTL = 60
)

// Option is a functional option handler for Agent.
type Option func(*Agent) error

// SetOption runs a functional option against the agent.
func (a *Agent) SetOption(option Option) error {
	return option(a)
}

// Interval sets the minimum time between two announces.
func Interval(d time.Duration) Option {
	return func(a *Agent) error {
		if d <= 0 {
			return errors.Errorf("lldpd: announce interval %s is not positive", d)
		}
		a.interval = d
		return nil
	}
}

// TTL sets the time to live, in seconds, carried by announces.
func TTL(seconds uint16) Option {
	return func(a *Agent) error {
		a.ttl = seconds
		return nil
	}
}

// WithLogger replaces the sink that receives one line per neighbor LLDPDU.
func WithLogger(l Logger) Option {
	return func(a *Agent) error {
		if l == nil {
			return errors.New("lldpd: nil logger")
		}
		a.log = l
		return nil
	}
}

// WithTLVs appends optional TLVs to every announce, after the TTL.
func WithTLVs(tlvs ...lldpdu.TLV) Option {
	return func(a *Agent) error {
		a.extra = append(a.extra, tlvs...)
		return nil
	}
}

// Strict makes Run fail on the first undecodable LLDPDU instead of dropping
// it.
func Strict() Option {
	return func(a *Agent) error {
		a.strict = true
		return nil
	}
}

// WithClock replaces the wall clock used by the announce timer.
func WithClock(c Clock) Option {
	return func(a *Agent) error {
		a.clock = c
		return nil
	}
}
