package fetch

import "math/rand"

// baselineUserAgent is sent on the first attempt.
const baselineUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// userAgents rotate on the 403 bypass attempt.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
}

// baselineHeaders returns the header set for the first attempt.
func baselineHeaders() map[string]string {
	return map[string]string{
		"User-Agent": baselineUserAgent,
	}
}

// browserHeaders builds a header set resembling an organic browser
// request arriving via a search engine referral. The randomness source
// is injected so header rotation is reproducible in tests.
func browserHeaders(rng *rand.Rand) map[string]string {
	return map[string]string{
		"User-Agent":                userAgents[rng.Intn(len(userAgents))],
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Referer":                   "https://www.google.com/",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}
