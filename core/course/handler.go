package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/api/weberr"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/validate"
)

// WebError translates a course operation failure into its HTTP form.
func WebError(err error) error {
	if fe, ok := validate.AsFieldErrors(err); ok {
		return weberr.Unprocessable(err, fe)
	}

	switch {
	case errors.Is(err, docstore.ErrInvalidID):
		return weberr.BadRequest(err, "invalid course id")
	case errors.Is(err, docstore.ErrNotFound):
		return weberr.NotFound(err, "course not found")
	}
	return err
}

func HandleCreate(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nc CourseNew
		if err := web.Decode(w, r, &nc); err != nil {
			return WebError(err)
		}

		id, err := Create(ctx, s, nc, time.Now().UTC())
		if err != nil {
			return WebError(err)
		}

		return web.Respond(ctx, w, map[string]string{"id": id}, http.StatusOK)
	}
}

func HandleList(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var published *bool
		if v := r.URL.Query().Get("published"); v != "" {
			b, err := parseBool(v)
			if err != nil {
				return WebError(validate.Invalid("published", "published must be a boolean"))
			}
			published = &b
		}

		cs, err := List(ctx, s, published)
		if err != nil {
			return fmt.Errorf("listing courses: %w", err)
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleShow(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c, err := Fetch(ctx, s, web.Param(r, "id"))
		if err != nil {
			return WebError(err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleUpdate(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if _, err := docstore.ParseID(id); err != nil {
			return WebError(err)
		}

		var up CourseUp
		if err := web.Decode(w, r, &up); err != nil {
			return WebError(err)
		}

		if err := Update(ctx, s, id, up, time.Now().UTC()); err != nil {
			return WebError(err)
		}

		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}

func HandleDelete(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := Delete(ctx, s, web.Param(r, "id")); err != nil {
			return WebError(err)
		}

		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}

// parseBool accepts the spellings browsers and form tools commonly send for a
// boolean query parameter.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", v)
}
