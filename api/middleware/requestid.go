package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/random"
)

const (
	RequestIDHeader = "X-Request-Id"

	// Longer ids sent by clients are cut to this length.
	DefaultRequestIDLengthLimit = 128
)

type ctxKey int

const requestIDKey ctxKey = 1

var (
	reqPrefix = random.Token(10)
	reqSeq    atomic.Int64
)

// RequestID reuses the caller's X-Request-Id or mints prefix-counter, stores
// it in the context and echoes it back on the response.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			switch {
			case id == "":
				id = reqPrefix + "-" + strconv.FormatInt(reqSeq.Add(1), 10)
			case len(id) > DefaultRequestIDLengthLimit:
				id = id[:DefaultRequestIDLengthLimit]
			}

			w.Header().Set(RequestIDHeader, id)
			return handler(context.WithValue(ctx, requestIDKey, id), w, r)
		}
		return h
	}
	return m
}

func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
