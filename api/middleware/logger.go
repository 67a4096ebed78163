package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			log := log

			if rid := ContextRequestID(ctx); rid != "" {
				log = log.WithField("req_id", rid)
			}

			log = log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"route":      route(r),
				"remoteaddr": r.RemoteAddr,
			})

			log.Debug("started")
			startTime := time.Now().UTC()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			log = log.WithFields(logrus.Fields{
				"statuscode": status(lw),
				"bytes":      lw.BytesWritten(),
				"since":      time.Since(startTime).String(),
			})
			if status(lw) >= http.StatusInternalServerError {
				log.Warn("completed")
			} else {
				log.Info("completed")
			}
			return err
		}
		return h
	}
	return m
}

// status defaults to 200 when the handler never wrote a header.
func status(w mutil.WriterProxy) int {
	if s := w.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
