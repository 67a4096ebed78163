package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/course-selling/docstore"
)

func TestMatch(t *testing.T) {
	tt := []struct {
		name   string
		filter docstore.Filter
		where  string
		args   []any
	}{
		{
			name:  "no filter",
			where: "collection = $1",
			args:  []any{"course"},
		},
		{
			name:   "sorted keys",
			filter: docstore.Filter{"published": true, "level": "beginner"},
			where:  "collection = $1 AND body -> $2::text = $3::jsonb AND body -> $4::text = $5::jsonb",
			args:   []any{"course", "level", `"beginner"`, "published", "true"},
		},
		{
			name:   "numbers",
			filter: docstore.Filter{"order": 3},
			where:  "collection = $1 AND body -> $2::text = $3::jsonb",
			args:   []any{"course", "order", "3"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			where, args, err := match("course", tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			if where != tc.where {
				t.Fatalf("expected %q, got %q", tc.where, where)
			}
			if diff := cmp.Diff(tc.args, args); diff != "" {
				t.Fatalf("unexpected args (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchRejectsUnencodableValues(t *testing.T) {
	if _, _, err := match("course", docstore.Filter{"bad": make(chan int)}); err == nil {
		t.Fatal("expected an encoding error")
	}
}
