package images

import (
	"fmt"
	"net/url"
	"regexp"
)

// Profile is a named bundle of outbound request headers used to impersonate a
// browsing context. Vendor CDNs commonly reject referer-less automated
// requests that a storefront referer sails through.
type Profile struct {
	Name      string
	UserAgent string
	Referer   string
	Accept    string
}

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	imageAccept      = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
)

// baseProfiles is the fixed fallback order: a generic storefront context
// first, then a bare request with no referer at all.
var baseProfiles = []Profile{
	{Name: "storefront", UserAgent: browserUserAgent, Referer: "https://www.google.com/", Accept: imageAccept},
	{Name: "bare", UserAgent: browserUserAgent, Accept: imageAccept},
}

var (
	reBigCommerceHost  = regexp.MustCompile(`^cdn\d*\.bigcommerce\.com$`)
	reBigCommerceStore = regexp.MustCompile(`^/s-([A-Za-z0-9]+)/`)
)

// ProfilesFor returns the ordered header profiles to try for a URL. For
// BigCommerce CDN URLs the store hash is recoverable from the first path
// segment, so a referer for that exact store is prepended as the
// most-likely-to-succeed profile.
func ProfilesFor(rawURL string) []Profile {
	u, err := url.Parse(rawURL)
	if err != nil {
		return baseProfiles
	}
	if reBigCommerceHost.MatchString(u.Host) {
		if m := reBigCommerceStore.FindStringSubmatch(u.Path); m != nil {
			store := Profile{
				Name:      "store",
				UserAgent: browserUserAgent,
				Referer:   fmt.Sprintf("https://store-%s.mybigcommerce.com/", m[1]),
				Accept:    imageAccept,
			}
			return append([]Profile{store}, baseProfiles...)
		}
	}
	return baseProfiles
}
