package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// maxRedirects bounds redirect chains followed while fetching a document.
const maxRedirects = 10

var errNoAddresses = errors.New("no IP addresses found")

// isBlockedIP reports whether ip is private, loopback, link-local or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// publicAddrs resolves host and fails if any of its addresses is blocked.
func publicAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%w for host: %s", errNoAddresses, host)
	}
	for _, a := range addrs {
		if isBlockedIP(a.IP) {
			return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, a.IP)
		}
	}
	return addrs, nil
}

// newSafeHTTPClient returns a client for document URLs supplied by MCP
// clients. It refuses to connect to, or be redirected to, non-public hosts.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	dial := func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		addrs, err := publicAddrs(ctx, host)
		if err != nil {
			return nil, err
		}
		// Dial the checked address so a second lookup cannot rebind the host.
		return dialer.DialContext(ctx, network, net.JoinHostPort(addrs[0].IP.String(), port))
	}

	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: &http.Transport{DialContext: dial},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			_, err := publicAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
