package api

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewCachingHTTPClient creates an HTTP client that caches GET responses
// honouring the backend's Cache-Control headers. Useful for the read-heavy
// list endpoints the dashboard polls.
func NewCachingHTTPClient(cacheDir string, timeout time.Duration) *http.Client {
	if cacheDir == "" {
		// Use in-memory cache if no cache directory specified
		return &http.Client{
			Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
			Timeout:   timeout,
		}
	}

	// Use disk-based cache for persistence across restarts
	cache := diskcache.New(cacheDir)

	return &http.Client{
		Transport: httpcache.NewTransport(cache),
		Timeout:   timeout,
	}
}
