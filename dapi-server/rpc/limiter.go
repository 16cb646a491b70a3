package rpc

import (
	"net"
	"net/http"

	"github.com/oraclelabs/dapi-server/network/httputil"
)

// limit charges one token per request to the caller's bucket and rejects the
// request once the bucket is full.
func (s *Service) limit(h http.HandlerFunc) http.HandlerFunc {
	if s.limiter == nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKey(r)
		if s.limiter.Remaining(key) < 1 || s.limiter.Add(key, 1) < 1 {
			log.WithField("caller", key).Debug("Rate limit exceeded")
			httputil.HandleError(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		h(w, r)
	}
}

// rateLimitKey is the caller principal if one is given, otherwise the remote host.
func rateLimitKey(r *http.Request) string {
	if p := r.Header.Get(PrincipalHeader); p != "" {
		return p
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
