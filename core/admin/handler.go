package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/docstore"
)

func HandleSummary(s *docstore.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sum, err := Compute(ctx, s)
		if err != nil {
			return fmt.Errorf("computing summary: %w", err)
		}

		return web.Respond(ctx, w, sum, http.StatusOK)
	}
}
