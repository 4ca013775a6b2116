package shortener

import (
	"net/url"
	"strings"
)

// normalize returns the canonical form of parsed used as the dedupe key.
// - Lowercases the scheme and host
// - Removes default ports (80 for http, 443 for https)
// - Removes trailing slashes from path (unless path is just "/")
// - Drops the fragment
// Percent-encoding in the path is preserved as submitted.
func normalize(parsed *url.URL) string {
	u := *parsed

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if escaped := u.EscapedPath(); len(escaped) > 1 && strings.HasSuffix(escaped, "/") {
		escaped = strings.TrimRight(escaped, "/")
		if escaped == "" {
			escaped = "/"
		}

		if path, err := url.PathUnescape(escaped); err == nil {
			u.Path = path
			u.RawPath = escaped
		}
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String()
}
