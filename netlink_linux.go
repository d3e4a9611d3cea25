package lldpd

import (
	"context"
	"net"

	"github.com/golang/glog"
	"github.com/jsimonetti/rtnetlink"
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Interfaces lists the Ethernet links known to the kernel.
func Interfaces() ([]Interface, error) {
	nl, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not dial rtnetlink")
	}
	defer nl.Close()

	if err := requestLinks(nl); err != nil {
		return nil, err
	}
	msgs, omsgs, err := nl.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "netlink receive error")
	}
	var ifis []Interface
	for i, msg := range msgs {
		if ifi, ok := ethernetLink(msg); ok && omsgs[i].Header.Type == unix.RTM_NEWLINK {
			ifis = append(ifis, ifi)
		}
	}
	return ifis, nil
}

// WatchInterfaces reports the current Ethernet links and then every link
// added or removed, until ctx is done.
func WatchInterfaces(ctx context.Context) (<-chan LinkEvent, error) {
	nl, err := rtnetlink.Dial(&netlink.Config{Groups: unix.RTMGRP_LINK})
	if err != nil {
		return nil, errors.Wrap(err, "could not dial rtnetlink")
	}
	if err := requestLinks(nl); err != nil {
		nl.Close()
		return nil, err
	}

	events := make(chan LinkEvent, 64)
	stop := context.AfterFunc(ctx, func() { nl.Close() })
	go func() {
		defer close(events)
		defer stop()
		known := make(linkSet)
		for {
			msgs, omsgs, err := nl.Receive()
			if err != nil {
				if ctx.Err() == nil {
					glog.Errorf("netlink receive error: %v", err)
				}
				return
			}
			for i, msg := range msgs {
				ifi, ok := ethernetLink(msg)
				if !ok {
					continue
				}
				var ev LinkEvent
				switch omsgs[i].Header.Type {
				case unix.RTM_NEWLINK:
					ev, ok = known.add(ifi)
				case unix.RTM_DELLINK:
					ev, ok = known.remove(ifi.Name)
				default:
					ok = false
				}
				if !ok {
					continue
				}
				glog.Infof("netlink reports %s interface %s (index %d)", ev.Op, ifi.Name, ifi.Index)
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

func requestLinks(nl *rtnetlink.Conn) error {
	req := &rtnetlink.LinkMessage{}
	if _, err := nl.Send(req, unix.RTM_GETLINK, netlink.Request|netlink.Dump); err != nil {
		return errors.Wrap(err, "netlink link dump request")
	}
	return nil
}

// ethernetLink keeps generic Ethernet links only.
func ethernetLink(msg rtnetlink.Message) (Interface, bool) {
	m, ok := msg.(*rtnetlink.LinkMessage)
	if !ok {
		return Interface{}, false
	}
	if m.Type != unix.ARPHRD_ETHER {
		// skip non-ethernet
		return Interface{}, false
	}
	if m.Family != unix.AF_UNSPEC {
		// skip non-generic
		return Interface{}, false
	}
	return Interface{
		Index:        int(m.Index),
		Name:         m.Attributes.Name,
		MTU:          int(m.Attributes.MTU),
		HardwareAddr: net.HardwareAddr(m.Attributes.Address),
	}, true
}
