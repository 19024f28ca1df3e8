package filtering

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
)

// hostSet matches a host and all of its subdomains.
type hostSet map[string]struct{}

func newHostSet(hosts ...[]string) hostSet {
	s := make(hostSet)
	for _, list := range hosts {
		for _, h := range list {
			if h = normalizeHost(h); h != "" {
				s[h] = struct{}{}
			}
		}
	}
	return s
}

// match walks the host's parent domains: "a.b.example.com" is checked as
// itself, "b.example.com" and "example.com".
func (s hostSet) match(host string) (string, bool) {
	if len(s) == 0 || host == "" {
		return "", false
	}
	for {
		if _, ok := s[host]; ok {
			return host, true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			return "", false
		}
		host = host[i+1:]
	}
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSuffix(h, ".")
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}
	return h
}

// sinkAddresses are the targets hosts files use to null-route a domain.
var sinkAddresses = map[string]bool{
	"0.0.0.0":   true,
	"127.0.0.1": true,
	"::":        true,
	"::1":       true,
}

// ParseHostList reads a block list. Accepted lines:
//
//	# comment
//	0.0.0.0 ads.example.com
//	ads.example.com
//	||ads.example.com^
//
// Anything else is skipped.
func ParseHostList(r io.Reader) ([]string, error) {
	var hosts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexAny(line, "#!"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			h := strings.TrimSuffix(strings.TrimPrefix(fields[0], "||"), "^")
			if validHost(h) {
				hosts = append(hosts, normalizeHost(h))
			}
		case 2:
			if sinkAddresses[fields[0]] && validHost(fields[1]) && fields[1] != "localhost" {
				hosts = append(hosts, normalizeHost(fields[1]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read host list: %w", err)
	}
	return hosts, nil
}

func validHost(h string) bool {
	if h == "" || strings.ContainsAny(h, "/*$|^") {
		return false
	}
	return strings.Contains(h, ".") || h == "localhost"
}
