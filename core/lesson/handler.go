package lesson

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/docstore"
)

func HandleCreate(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nl LessonNew
		if err := web.Decode(w, r, &nl); err != nil {
			return course.WebError(err)
		}

		id, err := Create(ctx, s, web.Param(r, "course_id"), nl, time.Now().UTC())
		if err != nil {
			return course.WebError(err)
		}

		return web.Respond(ctx, w, map[string]string{"id": id}, http.StatusOK)
	}
}

func HandleListByCourse(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ls, err := ListByCourse(ctx, s, web.Param(r, "course_id"))
		if err != nil {
			return fmt.Errorf("listing lessons: %w", err)
		}

		return web.Respond(ctx, w, ls, http.StatusOK)
	}
}
