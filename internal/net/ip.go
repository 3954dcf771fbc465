package net

import (
	"fmt"
	"net"
)

// LocalIPv4 returns the first IPv4 address of an interface that is up
// and not loopback, or 127.0.0.1 when there is none.
func LocalIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		return net.IPv4(127, 0, 0, 1)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// ShareURL is the websocket address other machines on the LAN can use.
func ShareURL(port int, path string) string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(LocalIPv4().String(), fmt.Sprint(port)), path)
}
