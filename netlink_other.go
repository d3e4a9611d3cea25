//go:build !linux

package lldpd

import (
	"context"
	"net"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const pollInterval = 2 * time.Second

// Interfaces lists the links that are up and have a MAC address.
func Interfaces() ([]Interface, error) {
	links, err := net.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "listing interfaces")
	}
	var ifis []Interface
	for _, link := range links {
		if link.Flags&net.FlagUp == 0 || len(link.HardwareAddr) != 6 {
			continue
		}
		ifis = append(ifis, Interface{
			Index:        link.Index,
			Name:         link.Name,
			MTU:          link.MTU,
			HardwareAddr: link.HardwareAddr,
		})
	}
	return ifis, nil
}

// WatchInterfaces polls Interfaces and reports links as they come and go,
// until ctx is done.
func WatchInterfaces(ctx context.Context) (<-chan LinkEvent, error) {
	current, err := Interfaces()
	if err != nil {
		return nil, err
	}
	events := make(chan LinkEvent, 64)
	go func() {
		defer close(events)
		known := make(linkSet)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			for _, ev := range known.sync(current) {
				glog.Infof("poll reports %s interface %s (index %d)", ev.Op, ev.Interface.Name, ev.Interface.Index)
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
			if current, err = Interfaces(); err != nil {
				glog.Errorf("polling interfaces: %v", err)
				return
			}
		}
	}()
	return events, nil
}
