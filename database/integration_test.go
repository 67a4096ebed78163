package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/irsalhamdi/course-selling/config"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// startPostgres runs a disposable Postgres container and returns a migrated
// connection to it. The test is skipped when Docker cannot be reached.
func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=courses",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("cannot start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("purging postgres container: %v", err)
		}
	})
	_ = resource.Expire(120)

	cfg := config.DB{
		User:         "postgres",
		Password:     "postgres",
		Host:         resource.GetHostPort("5432/tcp"),
		Name:         "courses",
		MaxIdleConns: 2,
		MaxOpenConns: 4,
		DisableTLS:   true,
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	pool.MaxWait = time.Minute
	if err := pool.Retry(func() error { return db.Ping() }); err != nil {
		t.Fatalf("waiting for postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := StatusCheck(ctx, db); err != nil {
		t.Fatalf("status check: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	// A second run must be a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("migrating twice: %v", err)
	}

	return db
}

type lessonDoc struct {
	ID       string `json:"id,omitempty"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
	Free     bool   `json:"free_preview"`
}

func TestDocumentsIntegration(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	s := docstore.New(NewDocuments(db, "courses"), docstore.WithTimeout(5*time.Second))
	lessons := docstore.NewCollection[lessonDoc](s)

	courseID := uuid.NewString()
	var ids []string
	for i, order := range []int{3, 1, 2} {
		id, err := lessons.Insert(ctx, lessonDoc{
			CourseID: courseID,
			Title:    fmt.Sprintf("lesson %d", i),
			Order:    order,
			Free:     order == 1,
		})
		if err != nil {
			t.Fatalf("inserting lesson: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := lessons.Insert(ctx, lessonDoc{CourseID: uuid.NewString(), Title: "other"}); err != nil {
		t.Fatal(err)
	}

	got, err := lessons.Find(ctx, docstore.Filter{"course_id": courseID})
	if err != nil {
		t.Fatal(err)
	}

	var gotIDs []string
	for _, l := range got {
		gotIDs = append(gotIDs, l.ID)
	}
	if diff := cmp.Diff(ids, gotIDs); diff != "" {
		t.Fatalf("expected insertion order (-want +got):\n%s", diff)
	}

	n, err := lessons.Count(ctx, docstore.Filter{"free_preview": true})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 free lesson, got %d", n)
	}

	if n, err := lessons.UpdateByID(ctx, ids[0], map[string]any{"title": "renamed"}); err != nil || n != 1 {
		t.Fatalf("update: %d %v", n, err)
	}
	l, err := lessons.FindOne(ctx, ids[0])
	if err != nil {
		t.Fatal(err)
	}
	want := lessonDoc{ID: ids[0], CourseID: courseID, Title: "renamed", Order: 3}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Fatalf("unexpected lesson (-want +got):\n%s", diff)
	}

	if n, err := lessons.DeleteByID(ctx, ids[0]); err != nil || n != 1 {
		t.Fatalf("delete: %d %v", n, err)
	}
	if _, err := lessons.FindOne(ctx, ids[0]); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n, err := lessons.DeleteByID(ctx, ids[0]); err != nil || n != 0 {
		t.Fatalf("second delete: %d %v", n, err)
	}

	names, err := s.ListCollections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"lessondoc"}, names); diff != "" {
		t.Fatalf("unexpected collections (-want +got):\n%s", diff)
	}

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
