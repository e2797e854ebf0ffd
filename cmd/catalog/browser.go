package main

import (
	"io"
	"net"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

// pageURL is the address the browser should open for a listener. Wildcard
// listeners are reached through the IPv4 loopback address.
func pageURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// openBrowser asks the desktop to open url without blocking the caller
func openBrowser(url string, logger zerolog.Logger) {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	go func() {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn().Err(err).Msg("Could not open browser, visit the URL manually")
		}
	}()
}
