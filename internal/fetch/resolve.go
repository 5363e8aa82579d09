package fetch

import "fmt"

// DefaultProxyURL is the mirror endpoint that serves bucket-relative
// locators over plain HTTPS.
const DefaultProxyURL = "https://bbproxy.meyerstk.com"

// ResolveLocators rewrites bare object keys into fetchable URLs against
// the proxy mirror. With no bucket, locators are assumed to already be
// absolute URLs and are returned unchanged.
func ResolveLocators(locators []string, bucket string) []string {
	if bucket == "" {
		return locators
	}
	resolved := make([]string, 0, len(locators))
	for _, locator := range locators {
		resolved = append(resolved, fmt.Sprintf("%s/file/%s/%s", DefaultProxyURL, bucket, locator))
	}
	return resolved
}
