package router

import (
	"net/http"
	"slices"
	"strings"
)

// originPolicy is the parsed CORS_ALLOW_ORIGIN list.
type originPolicy struct {
	origins     []string
	wildcard    bool
	credentials bool
}

func newOriginPolicy(allowOrigin string, allowCredentials bool) originPolicy {
	origins := parseOrigins(allowOrigin)
	return originPolicy{
		origins: origins,
		// пустой список трактуем как "*"
		wildcard:    len(origins) == 0 || slices.Contains(origins, "*"),
		credentials: allowCredentials,
	}
}

// allow returns the Access-Control-Allow-Origin value for requestOrigin
// and whether the answer depends on the Origin header.
func (p originPolicy) allow(requestOrigin string) (value string, varyOrigin bool) {
	if p.wildcard {
		// with credentials "*" is rejected by browsers, echo the origin
		if p.credentials && requestOrigin != "" {
			return requestOrigin, true
		}
		return "*", false
	}
	if requestOrigin != "" && slices.Contains(p.origins, requestOrigin) {
		return requestOrigin, true
	}
	return "", true
}

// withCORS adds CORS headers and handles preflight requests.
func withCORS(allowOrigin string, allowCredentials bool, h http.HandlerFunc) http.HandlerFunc {
	policy := newOriginPolicy(allowOrigin, allowCredentials)
	return func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		value, varyOrigin := policy.allow(r.Header.Get("Origin"))
		if value != "" {
			header.Set("Access-Control-Allow-Origin", value)
		}
		if varyOrigin {
			header.Set("Vary", "Origin")
		}
		if policy.credentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		header.Set("Access-Control-Expose-Headers", requestIDHeader)
		header.Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h(w, r)
	}
}

func parseOrigins(allowOrigin string) []string {
	parts := strings.Split(allowOrigin, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
