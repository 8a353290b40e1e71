// Package redirect builds the absolute callback URLs handed to providers.
package redirect

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// LoginPrefix is the route prefix shared by login initiation and callbacks.
const LoginPrefix = "/login/"

// Builder constructs callback URLs from the incoming request.
type Builder struct {
	// Secure selects https for request-derived URLs. The request's own TLS
	// state is ignored.
	Secure bool
	// BaseURL, when set, replaces scheme, host and port entirely.
	BaseURL string
}

// CallbackURL returns the absolute URL the provider must redirect back to.
func (b Builder) CallbackURL(r *http.Request, provider string) string {
	path := LoginPath(provider)
	if b.BaseURL != "" {
		return strings.TrimRight(b.BaseURL, "/") + path
	}

	host, port := hostPort(r)
	scheme := "http"
	if b.Secure {
		scheme = "https"
	}

	// Only port 80 is dropped, whatever the scheme.
	hostPort := host
	if port != 80 {
		hostPort = net.JoinHostPort(host, strconv.Itoa(port))
	} else if strings.Contains(host, ":") {
		hostPort = "[" + host + "]"
	}
	return scheme + "://" + hostPort + path
}

// LoginPath returns the login route for a provider.
func LoginPath(provider string) string {
	return LoginPrefix + url.PathEscape(provider)
}

// ProviderFromPath recovers the provider name from a login route path or
// absolute callback URL.
func ProviderFromPath(raw string) (string, bool) {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.EscapedPath() != "" {
		p = u.EscapedPath()
	}
	i := strings.LastIndex(p, LoginPrefix)
	if i < 0 {
		return "", false
	}
	seg := p[i+len(LoginPrefix):]
	if strings.Contains(seg, "/") {
		return "", false
	}
	name, err := url.PathUnescape(seg)
	if err != nil {
		return "", false
	}
	return name, true
}

// hostPort splits the request host. Without an explicit port the default is
// 443 for TLS requests and 80 otherwise.
func hostPort(r *http.Request) (string, int) {
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	if h, p, err := net.SplitHostPort(host); err == nil {
		if n, err := strconv.Atoi(p); err == nil {
			return h, n
		}
		return h, defaultPort(r)
	}
	return strings.Trim(host, "[]"), defaultPort(r)
}

func defaultPort(r *http.Request) int {
	if r.TLS != nil {
		return 443
	}
	return 80
}
