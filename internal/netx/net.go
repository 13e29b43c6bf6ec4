// Package netx contains networking helpers for the LMS client.
package netx

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// secureHostSuffixes lists host patterns that must always be reached over
// TLS, regardless of the scheme in the configured base URL.
var secureHostSuffixes = []string{
	".mastereducation.kz",
	".edu.kz",
}

// NormalizeBaseURL validates the configured API base URL and returns it in
// canonical form: no trailing slash, an explicit scheme, and https enforced
// for production hosts. Loopback hosts keep plain http so local development
// works without certificates.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("base url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q in base url", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url %q has no host", raw)
	}

	if u.Scheme == "http" && requiresTLS(u.Hostname()) {
		u.Scheme = "https"
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

func requiresTLS(host string) bool {
	if IsLoopback(host) {
		return false
	}
	for _, suffix := range secureHostSuffixes {
		if strings.HasSuffix(host, suffix) || host == strings.TrimPrefix(suffix, ".") {
			return true
		}
	}
	return false
}

// IsLoopback reports whether the host resolves trivially to the local machine
// (localhost or a loopback IP literal).
func IsLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
