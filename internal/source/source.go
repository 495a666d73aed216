// Package source normalizes user-entered article URLs and checks them
// against the list of news outlets the analysis service recognizes.
package source

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultDomains are the news outlets the analysis service is tuned for
var DefaultDomains = []string{
	"abcnews.go.com",
	"aljazeera.com",
	"apnews.com",
	"axios.com",
	"bbc.co.uk",
	"bbc.com",
	"bloomberg.com",
	"breitbart.com",
	"cbsnews.com",
	"cnbc.com",
	"cnn.com",
	"dailymail.co.uk",
	"economist.com",
	"factcheck.org",
	"forbes.com",
	"foxnews.com",
	"ft.com",
	"huffpost.com",
	"independent.co.uk",
	"latimes.com",
	"msnbc.com",
	"nbcnews.com",
	"newsweek.com",
	"npr.org",
	"nypost.com",
	"nytimes.com",
	"politico.com",
	"politifact.com",
	"reuters.com",
	"snopes.com",
	"telegraph.co.uk",
	"theatlantic.com",
	"theguardian.com",
	"thehill.com",
	"time.com",
	"usatoday.com",
	"vox.com",
	"washingtonpost.com",
	"wsj.com",
}

// ExampleURLs are offered as starting points in the input screen
var ExampleURLs = []string{
	"https://www.snopes.com/fact-check/trump-super-bowl-cost-taxpayers/",
	"https://www.politifact.com/factchecks/2025/feb/14/elon-musk/fema-did-not-give-disaster-relief-money-to-new-yor/",
	"https://www.snopes.com/fact-check/muslims-minority-rights-churchill-quote/",
}

// UnrecognizedSourceError reports a URL whose host is not on the allow-list.
// It is advisory: callers show it to the user instead of calling the API.
type UnrecognizedSourceError struct {
	Domain string
}

func (e *UnrecognizedSourceError) Error() string {
	if e.Domain == "" {
		return "unrecognized news source"
	}
	return fmt.Sprintf("unrecognized news source: %s", e.Domain)
}

// Normalize trims the input and prefixes https:// when no http(s) scheme
// is present. Empty input stays empty.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// Domain extracts the host from a URL, lowercased, with the www. prefix
// and any port stripped. Unparseable input is returned unchanged.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

// Checker matches hosts against an allow-list of domains
type Checker struct {
	domains map[string]struct{}
}

// NewChecker builds a checker over DefaultDomains plus any extra domains
func NewChecker(extra ...string) *Checker {
	c := &Checker{domains: make(map[string]struct{}, len(DefaultDomains)+len(extra))}
	for _, d := range DefaultDomains {
		c.add(d)
	}
	for _, d := range extra {
		c.add(d)
	}
	return c
}

func (c *Checker) add(domain string) {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if domain != "" {
		c.domains[domain] = struct{}{}
	}
}

// Recognized reports whether host is an allow-listed domain or one of its
// subdomains. Matching never climbs above the registrable domain, so an
// allow-list entry that is itself a public suffix matches nothing else.
func (c *Checker) Recognized(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return false
	}

	floor := host
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		floor = etld1
	}

	for h := host; len(h) >= len(floor); {
		if _, ok := c.domains[h]; ok {
			return true
		}
		i := strings.IndexByte(h, '.')
		if i < 0 {
			break
		}
		h = h[i+1:]
	}
	return false
}

// Check returns *UnrecognizedSourceError when rawURL's host is not
// recognized. rawURL should already be normalized.
func (c *Checker) Check(rawURL string) error {
	host := Domain(rawURL)
	if !c.Recognized(host) {
		return &UnrecognizedSourceError{Domain: host}
	}
	return nil
}
