package url

import (
	"path"
	"strings"
)

// Resolve resolves the Location of a redirect response against u.
//
//	http://h/x, https://h/x   absolute, parsed as is
//	//h/x                     scheme relative, inherits u.Scheme
//	/x                        absolute path on u's host
//	x, ../x                   relative to the directory of u.Path
func (u *URL) Resolve(location string) (*URL, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return Parse(location)
	case strings.HasPrefix(location, "//"):
		return Parse(string(u.Scheme) + ":" + location)
	case strings.HasPrefix(location, "/"):
		return Parse(u.origin() + location)
	}
	return Parse(u.origin() + resolvePath(u.Path, location))
}

// resolvePath merges a relative reference with the directory of base and
// removes dot segments. The result always starts with "/".
func resolvePath(base, ref string) string {
	base, _, _ = cutAny(base, "?#")
	dir := base[:strings.LastIndexByte(base, '/')+1]

	p, suffix, hasSuffix := cutAny(ref, "?#")
	joined := path.Clean(dir + p)
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	if p == "" || strings.HasSuffix(p, "/") || strings.HasSuffix(p, "/.") || strings.HasSuffix(p, "/..") || p == "." || p == ".." {
		if !strings.HasSuffix(joined, "/") {
			joined += "/"
		}
	}
	if hasSuffix {
		joined += ref[len(p):len(p)+1] + suffix
	}
	return joined
}

// cutAny slices s around the first byte that is one of chars.
func cutAny(s, chars string) (before, after string, found bool) {
	if i := strings.IndexAny(s, chars); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
