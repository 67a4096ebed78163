package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/metrics"
	"github.com/zenazn/goji/web/mutil"
)

// Metrics records the status and latency of every request, labelled by the
// route template rather than the raw path to keep cardinality bounded.
func Metrics(m *metrics.Metrics) web.Middleware {
	mw := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			start := time.Now()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			m.ObserveRequest(r.Method, route(r), status(lw), time.Since(start))
			return err
		}
		return h
	}
	return mw
}

func route(r *http.Request) string {
	if cr := mux.CurrentRoute(r); cr != nil {
		if tpl, err := cr.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
