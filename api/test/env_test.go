package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/irsalhamdi/course-selling/api"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/metrics"
	"github.com/sirupsen/logrus"
)

type TestEnv struct {
	*httptest.Server
	Store   *docstore.Store
	Metrics *metrics.Metrics
}

// NewTestEnv serves the full mux over store. A nil backend gives an
// environment whose store was never connected.
func NewTestEnv(t *testing.T, backend docstore.Backend) *TestEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	m := metrics.New(nil)
	store := docstore.New(backend, docstore.WithObserver(m.ObserveStore))

	srv := httptest.NewServer(api.APIMux(api.APIConfig{
		CorsOrigin:   "*",
		Log:          log,
		Store:        store,
		Metrics:      m,
		DBConfigured: backend != nil,
	}))
	t.Cleanup(srv.Close)

	return &TestEnv{Server: srv, Store: store, Metrics: m}
}

// do sends body as JSON, checks the status code and decodes the reply into
// out when out is not nil.
func (env *TestEnv) do(t *testing.T, method, path string, body any, want int, out any) {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if rd != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != want {
		msg, _ := io.ReadAll(w.Body)
		t.Fatalf("%s %s: expected status code %d, got %d: %s", method, path, want, w.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: cannot unmarshal response: %v", method, path, err)
		}
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type idBody struct {
	ID string `json:"id"`
}
