package net

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_polyboard._tcp"

// Advertise announces the websocket endpoint on the local network. The
// TXT record carries the endpoint path. Call Shutdown on the returned
// server to withdraw the announcement.
func Advertise(port int, path string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"PolyBoard", "path=" + path}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, []net.IP{LocalIPv4()}, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised boards for the given duration and calls
// found with each host:port it sees.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS query: %w", err)
	}
	return nil
}
