package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/api/weberr"
	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/docstore"
)

// Recorder is notified of every order that was stored.
type Recorder interface {
	OrderCreated()
}

func HandleCreate(s *docstore.Store, rec Recorder) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var no OrderNew
		if err := web.Decode(w, r, &no); err != nil {
			return course.WebError(err)
		}

		ord, err := Create(ctx, s, no, time.Now().UTC())
		if err != nil {
			return course.WebError(err)
		}
		if rec != nil {
			rec.OrderCreated()
		}

		resp := struct {
			ID     string `json:"id"`
			Status Status `json:"status"`
		}{ord.ID, ord.Status}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleShow(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		ord, err := Fetch(ctx, s, id)
		if err != nil {
			f := weberr.WithFields(map[string]any{"order_id": id})
			switch {
			case errors.Is(err, docstore.ErrInvalidID):
				return weberr.BadRequest(err, "invalid order id", f)
			case errors.Is(err, docstore.ErrNotFound):
				return weberr.NotFound(err, "order not found", f)
			}
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}
