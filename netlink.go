package lldpd

import (
	"net"

	"github.com/pkg/errors"
)

// Interface is an Ethernet link the agent could run on.
type Interface struct {
	Index        int
	Name         string
	MTU          int
	HardwareAddr net.HardwareAddr
}

// InterfaceByName looks name up among Interfaces.
func InterfaceByName(name string) (Interface, error) {
	ifis, err := Interfaces()
	if err != nil {
		return Interface{}, err
	}
	for _, ifi := range ifis {
		if ifi.Name == name {
			return ifi, nil
		}
	}
	return Interface{}, errors.Errorf("lldpd: interface %s is not present", name)
}

// LinkOp says whether a link appeared or went away.
type LinkOp uint8

const (
	LinkAdd LinkOp = 1
	LinkDel LinkOp = 2
)

func (l LinkOp) String() string {
	switch l {
	case LinkAdd:
		return "ADD"
	case LinkDel:
		return "DEL"
	default:
		return "UNKNOWN"
	}
}

// LinkEvent is sent by WatchInterfaces.
type LinkEvent struct {
	Op        LinkOp
	Interface Interface
}

// linkSet tracks the links already reported to a watcher.
type linkSet map[string]Interface

func (s linkSet) add(ifi Interface) (LinkEvent, bool) {
	if _, ok := s[ifi.Name]; ok {
		return LinkEvent{}, false
	}
	s[ifi.Name] = ifi
	return LinkEvent{Op: LinkAdd, Interface: ifi}, true
}

func (s linkSet) remove(name string) (LinkEvent, bool) {
	ifi, ok := s[name]
	if !ok {
		return LinkEvent{}, false
	}
	delete(s, name)
	return LinkEvent{Op: LinkDel, Interface: ifi}, true
}

// sync replaces the set with current and returns the differences.
func (s linkSet) sync(current []Interface) []LinkEvent {
	var events []LinkEvent
	seen := make(map[string]bool, len(current))
	for _, ifi := range current {
		seen[ifi.Name] = true
		if ev, ok := s.add(ifi); ok {
			events = append(events, ev)
		}
	}
	for name := range s {
		if !seen[name] {
			ev, _ := s.remove(name)
			events = append(events, ev)
		}
	}
	return events
}
