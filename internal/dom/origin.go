package dom

import (
	"net/url"
	"strings"
)

// IsCrossOrigin reports whether src points outside origin.
//
// Relative URLs are same-origin. "about:" URLs (about:blank, about:srcdoc)
// inherit the embedding document's origin. An unparsable src is treated as
// cross-origin. When origin is empty every absolute URL with a host is
// cross-origin.
func IsCrossOrigin(src, origin string) bool {
	src = strings.TrimSpace(src)
	if src == "" {
		return false
	}

	u, err := url.Parse(src)
	if err != nil {
		return true
	}
	if strings.EqualFold(u.Scheme, "about") {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return false
	}

	base, err := url.Parse(origin)
	if err != nil || base.Host == "" {
		return true
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = base.Scheme
	}
	return !strings.EqualFold(scheme, base.Scheme) || hostPort(scheme, u) != hostPort(base.Scheme, base)
}

// hostPort returns host:port with the scheme's default port made explicit.
func hostPort(scheme string, u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch strings.ToLower(scheme) {
		case "http":
			port = "80"
		case "https":
			port = "443"
		}
	}
	return strings.ToLower(u.Hostname()) + ":" + port
}
