package config

import (
	"strconv"
	"strings"
)

// HostPort is a host with its port kept as a string. The port is never
// validated here; a bad value surfaces in whatever consumes it.
type HostPort struct {
	Host string
	Port string
}

func (hp HostPort) String() string {
	return hp.Host + ":" + hp.Port
}

// SplitHostPort splits value on its first colon. Without a colon the whole
// value is the host and defaultPort is used.
func SplitHostPort(value string, defaultPort int) HostPort {
	host, port, found := strings.Cut(value, ":")
	if !found {
		return HostPort{Host: value, Port: strconv.Itoa(defaultPort)}
	}
	return HostPort{Host: host, Port: port}
}
