package aurora

import (
	"net/url"
	"strings"
)

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// MapQuery returns the searchable part of a location: the text before the
// first "(", trimmed.
func MapQuery(location string) string {
	q, _, _ := strings.Cut(location, "(")
	return strings.TrimSpace(q)
}

// MapURL returns a map search link for location.
func MapURL(location string) string {
	return mapSearchURL + strings.ReplaceAll(url.QueryEscape(MapQuery(location)), "+", "%20")
}
