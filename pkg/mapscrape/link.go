package mapscrape

import (
	"net/url"
	"strings"
)

// supportedHosts are map-link hosts the extraction service understands.
// Anything else is rejected before an extraction attempt is made.
var supportedHosts = []string{
	"maps.google.com",
	"maps.app.goo.gl",
	"goo.gl",
}

// IsSupportedLink reports whether the source link has a shape the
// extraction service can handle: a Google Maps host, or a google.*
// domain with a /maps path.
func IsSupportedLink(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	for _, h := range supportedHosts {
		if host == h {
			// goo.gl short links must be maps links.
			if h == "goo.gl" && !strings.HasPrefix(u.Path, "/maps") {
				return false
			}
			return true
		}
	}

	if (host == "google.com" || strings.HasPrefix(host, "google.")) &&
		strings.HasPrefix(u.Path, "/maps") {
		return true
	}

	return false
}
