package auth

import "strings"

// PublicRoutes is the static allow-list consulted before any credential
// check. A match skips the rest of the auth pipeline entirely.
type PublicRoutes struct {
	exact    map[string]struct{}
	patterns []publicPattern
}

type publicPattern struct {
	method   string
	segments []string
}

// DefaultPublicRoutes lists the endpoints reachable without credentials.
func DefaultPublicRoutes() *PublicRoutes {
	return NewPublicRoutes([]Route{
		{"GET", "/api/health"},
		{"GET", "/metrics"},
		{"POST", "/api/admin/login"},
		{"POST", "/api/developer/login"},
		{"GET", "/api/items/:id/preview"},
		{"GET", "/api/avatars/:id/preview"},
		{"GET", "/api/rooms/:id/preview"},
	})
}

// Route is one (method, path) allow-list entry. Path segments starting
// with ':' match any single concrete segment.
type Route struct {
	Method string
	Path   string
}

// NewPublicRoutes builds a classifier from the given entries.
func NewPublicRoutes(routes []Route) *PublicRoutes {
	pr := &PublicRoutes{exact: make(map[string]struct{})}
	for _, route := range routes {
		if strings.Contains(route.Path, ":") {
			pr.patterns = append(pr.patterns, publicPattern{
				method:   route.Method,
				segments: strings.Split(route.Path, "/"),
			})
		} else {
			pr.exact[route.Method+" "+route.Path] = struct{}{}
		}
	}
	return pr
}

// IsPublic reports whether the (method, path) pair is on the allow-list.
// Exact match first, then segment-for-segment pattern match. No regex and
// no trailing-slash normalization: "/api/health/" does not match
// "/api/health".
func (pr *PublicRoutes) IsPublic(method, path string) bool {
	if _, ok := pr.exact[method+" "+path]; ok {
		return true
	}

	segments := strings.Split(path, "/")
	for _, pattern := range pr.patterns {
		if pattern.method != method {
			continue
		}
		if matchSegments(pattern.segments, segments) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}
