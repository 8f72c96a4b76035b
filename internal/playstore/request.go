package playstore

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Play Store listing endpoint.
	DefaultBaseURL = "https://play.google.com/store/apps/details"

	// DefaultCountry is the locale used when none is given.
	DefaultCountry = "en"
)

// BuildStoreURL returns the listing URL for packageName in the given locale.
// The date parameter carries now in epoch milliseconds so that intermediate
// caches never serve a stale page.
func BuildStoreURL(baseURL, packageName, country string, now time.Time) string {
	if country == "" {
		country = DefaultCountry
	}
	return fmt.Sprintf("%s?id=%s&hl=%s&date=%d",
		baseURL,
		url.QueryEscape(packageName),
		url.QueryEscape(country),
		now.UnixMilli(),
	)
}
