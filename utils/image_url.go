package utils

import "strings"

// Asset host transform parameters: width, quality and format
const (
	OptimizedWidth   = 800
	OptimizedQuality = 75
	OptimizedFormat  = "webp"
)

const optimizeParams = "w=800&q=75&fm=webp"

// NormalizeAssetURL makes protocol-relative asset URLs ("//host/a.jpg") absolute
func NormalizeAssetURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// OptimizeImageURL asks the asset host for a smaller encoded variant by
// appending width/quality/format query parameters. The image itself is never
// touched. Empty input is returned unchanged, and a URL that already ends with
// the parameters is returned as is.
func OptimizeImageURL(url string) string {
	if url == "" {
		return url
	}
	if strings.HasSuffix(url, optimizeParams) {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
		if strings.HasSuffix(url, "?") || strings.HasSuffix(url, "&") {
			sep = ""
		}
	}
	return url + sep + optimizeParams
}

// OptimizeImageURLs applies OptimizeImageURL to every entry
func OptimizeImageURLs(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = OptimizeImageURL(u)
	}
	return out
}
