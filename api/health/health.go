// Package health serves the store diagnostic. It never fails the request:
// store problems are reported as text in the body.
package health

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/course-selling/api/web"
	"github.com/irsalhamdi/course-selling/docstore"
)

const maxCollections = 10

type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Check inspects s. configured reports whether connection settings were
// supplied to the process at all.
func Check(ctx context.Context, s *docstore.Store, configured bool) Status {
	st := Status{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}
	if !s.Available() {
		return st
	}

	url := "not set"
	if configured {
		url = "set"
	}
	name := s.Name()
	st.DatabaseURL = &url
	st.DatabaseName = &name

	if err := s.Ping(ctx); err != nil {
		st.Database = "error: " + truncate(err.Error())
		return st
	}
	st.Database = "connected"
	st.ConnectionStatus = "connected"

	names, err := s.ListCollections(ctx)
	if err != nil {
		st.Database = "connected but error: " + truncate(err.Error())
		return st
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	st.Collections = names

	return st
}

func Handle(s *docstore.Store, configured bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, Check(ctx, s, configured), http.StatusOK)
	}
}

func truncate(msg string) string {
	const limit = 80
	if r := []rune(msg); len(r) > limit {
		return string(r[:limit])
	}
	return msg
}
