package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/api/weberr"
	"github.com/irsalhamdi/course-selling/rate"
)

// RateLimit rejects clients, keyed by remote IP, that exceed the limiter budget.
func RateLimit(l *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			client := clientIP(r)
			if !l.Check(client) {
				return weberr.TooManyRequests(fmt.Errorf("client %s exceeded the rate limit", client))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
