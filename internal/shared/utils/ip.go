package utils

import (
	"net"
	"net/http"
	"strings"
)

var privateBlocks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
)

// ClientIP lấy IP thật của client.
// Thứ tự: X-Forwarded-For (hop public đầu tiên) → X-Real-IP → RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip := forwardedFor(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if net.ParseIP(host) != nil {
		return host
	}
	return "127.0.0.1"
}

// forwardedFor bỏ qua các hop private (proxy nội bộ); nếu toàn bộ chain là
// private thì lấy hop hợp lệ đầu tiên.
func forwardedFor(xff string) string {
	var first string
	for _, part := range strings.Split(xff, ",") {
		ip := strings.TrimSpace(part)
		if net.ParseIP(ip) == nil {
			continue
		}
		if first == "" {
			first = ip
		}
		if !IsPrivateIP(ip) {
			return ip
		}
	}
	return first
}

// IsPrivateIP reports whether ip is loopback or in an RFC1918 range
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	if parsed.IsLoopback() {
		return true
	}
	for _, block := range privateBlocks {
		if block.Contains(parsed) {
			return true
		}
	}
	return false
}

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, block, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		out = append(out, block)
	}
	return out
}
