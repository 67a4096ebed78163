package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/course-selling/api/health"
	"github.com/irsalhamdi/course-selling/api/middleware"
	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/api/weberr"
	"github.com/irsalhamdi/course-selling/core/admin"
	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/core/lesson"
	"github.com/irsalhamdi/course-selling/core/order"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/metrics"
	"github.com/irsalhamdi/course-selling/rate"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	Store      *docstore.Store
	// Metrics and Limiter are optional.
	Metrics *metrics.Metrics
	Limiter *rate.Limiter
	// DBConfigured is reported by the diagnostic endpoint.
	DBConfigured bool
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	if cfg.Metrics != nil {
		a.mw = append(a.mw, middleware.Metrics(cfg.Metrics))
	}
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())
	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	s := cfg.Store

	var rec order.Recorder
	if cfg.Metrics != nil {
		rec = cfg.Metrics
	}

	a.Handle(http.MethodGet, "/", handleRoot)
	a.Handle(http.MethodGet, "/test", health.Handle(s, cfg.DBConfigured))

	a.Handle(http.MethodPost, "/api/courses", course.HandleCreate(s))
	a.Handle(http.MethodGet, "/api/courses", course.HandleList(s))
	a.Handle(http.MethodGet, "/api/courses/{id}", course.HandleShow(s))
	a.Handle(http.MethodPatch, "/api/courses/{id}", course.HandleUpdate(s))
	a.Handle(http.MethodDelete, "/api/courses/{id}", course.HandleDelete(s))

	a.Handle(http.MethodPost, "/api/courses/{course_id}/lessons", lesson.HandleCreate(s))
	a.Handle(http.MethodGet, "/api/courses/{course_id}/lessons", lesson.HandleListByCourse(s))

	a.Handle(http.MethodPost, "/api/orders", order.HandleCreate(s, rec))
	a.Handle(http.MethodGet, "/api/orders/{id}", order.HandleShow(s))

	a.Handle(http.MethodGet, "/api/admin/summary", admin.HandleSummary(s))

	if cfg.Metrics != nil {
		a.Router.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	a.Router.NotFoundHandler = a.wrap(handleNotFound)
	a.Router.MethodNotAllowedHandler = a.wrap(handleMethodNotAllowed)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CorsOrigin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return c.Handler(a.Router)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	a.Router.Handle(path, a.wrap(handler, mw...)).Methods(method)
}

func (a *api) wrap(handler web.Handler, mw ...web.Middleware) http.Handler {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})
}

func handleRoot(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, map[string]string{"message": "Course Selling API running"}, http.StatusOK)
}

func handleNotFound(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return weberr.NotFound(errors.New("no route for "+r.URL.Path), "")
}

func handleMethodNotAllowed(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return weberr.NewError(
		errors.New(r.Method+" not allowed on "+r.URL.Path),
		"method not allowed",
		http.StatusMethodNotAllowed,
	)
}
