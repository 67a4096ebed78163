package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/api/weberr"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/sirupsen/logrus"
)

// Errors logs every error returned by the handler chain and turns it into a
// JSON response. Errors without an attached response become 503 when the
// store was never connected and 500 otherwise.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := map[string]interface{}{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			log.WithFields(logrus.Fields(fields)).Error("ERROR")

			if errors.Is(err, docstore.ErrStoreUnavailable) {
				if _, _, ok := weberr.Response(err); !ok {
					err = weberr.Unavailable(err)
				}
			}

			if body, code, ok := weberr.Response(err); ok {
				return web.Respond(ctx, w, body, code)
			}

			er := weberr.ErrorResponse{
				Error: http.StatusText(http.StatusInternalServerError),
			}
			return web.Respond(ctx, w, er, http.StatusInternalServerError)
		}
		return h
	}
	return m
}
