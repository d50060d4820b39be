package roblox

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client optimized for Roblox API calls.
// Features:
// - Connection pooling (max 100 idle connections)
// - Keep-alive enabled
// - Proper timeouts to prevent hanging requests
// - TLS handshake timeout
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		// Connection pooling settings
		MaxIdleConns:        100,              // Total max idle connections
		MaxIdleConnsPerHost: 20,               // Max idle connections per host
		MaxConnsPerHost:     50,               // Max total connections per host
		IdleConnTimeout:     90 * time.Second, // How long idle connections stay in pool

		// Dial settings
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // Connection timeout
			KeepAlive: 30 * time.Second, // TCP keep-alive interval
		}).DialContext,

		// TLS settings
		TLSHandshakeTimeout: 10 * time.Second,

		// Response settings
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		// Forces HTTP/2 when available
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second, // Overall request timeout
	}
}
