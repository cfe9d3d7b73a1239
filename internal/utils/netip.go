// Package utils holds small shared helpers with no better home.
package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// StripPort reduces "host:port", "[v6]:port" or a bare "host" to the
// host part.
func StripPort(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// ClientIP resolves the address a request came from. With trustProxy
// set, the X-Forwarded-For chain (left-most entry) and X-Real-IP are
// consulted first. Only enable that behind a reverse proxy you
// control: on a directly exposed listener those headers are whatever
// the client felt like sending.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := StripPort(strings.TrimSpace(first)); ip != "" {
				return ip
			}
		}
		if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
			return StripPort(real)
		}
	}
	return StripPort(r.RemoteAddr)
}

// IPMatcher answers whether an address is on a configured list of
// exact IPs and CIDR ranges.
type IPMatcher struct {
	addrs    []netip.Addr
	prefixes []netip.Prefix
}

// NewIPMatcher parses a mixed list of IPs and CIDRs. Unparseable
// entries are dropped.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			m.addrs = append(m.addrs, a.Unmap())
		}
	}
	return m
}

// IsEmpty reports whether nothing usable was configured.
func (m *IPMatcher) IsEmpty() bool {
	return len(m.addrs) == 0 && len(m.prefixes) == 0
}

// Allow reports whether ip matches the list. Mapped IPv4-in-IPv6
// addresses are unmapped first, so dual-stack listeners still match
// v4 rules.
func (m *IPMatcher) Allow(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, a := range m.addrs {
		if a == addr {
			return true
		}
	}
	for _, p := range m.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
