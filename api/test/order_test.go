package test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-selling/core/order"
	"github.com/irsalhamdi/course-selling/docstore"
)

type orderTest struct {
	*TestEnv
}

func TestOrder(t *testing.T) {
	env := NewTestEnv(t, docstore.NewMemory())
	ct := &courseTest{env}
	ot := &orderTest{env}

	c := ct.createCourseOK(t, "Go in depth", 49.99, true)

	id := ot.createOrderOK(t, c.ID)
	ot.showOrderOK(t, id, c.ID)

	ot.createOrderInvalid(t)
	ot.do(t, http.MethodGet, "/api/orders/bogus", nil, http.StatusBadRequest, nil)
	ot.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), nil, http.StatusNotFound, nil)
}

func (ot *orderTest) createOrderOK(t *testing.T, courseID string) string {
	t.Helper()

	in := map[string]any{
		"course_id":   courseID,
		"buyer_name":  "Ada",
		"buyer_email": "ada@example.com",
		"amount":      0.01,
		"status":      "refunded",
	}

	var res struct {
		ID     string       `json:"id"`
		Status order.Status `json:"status"`
	}
	ot.do(t, http.MethodPost, "/api/orders", in, http.StatusOK, &res)

	if res.ID == "" || res.Status != order.Paid {
		t.Fatalf("unexpected order response %+v", res)
	}

	return res.ID
}

func (ot *orderTest) showOrderOK(t *testing.T, id, courseID string) {
	t.Helper()

	var got order.Order
	ot.do(t, http.MethodGet, "/api/orders/"+id, nil, http.StatusOK, &got)

	if got.Amount != 49.99 {
		t.Fatalf("expected the course price 49.99, got %v", got.Amount)
	}
	if got.Status != order.Paid || got.CourseID != courseID || got.BuyerEmail != "ada@example.com" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func (ot *orderTest) createOrderInvalid(t *testing.T) {
	t.Helper()

	base := map[string]any{"buyer_name": "Ada", "buyer_email": "ada@example.com"}

	with := func(courseID string) map[string]any {
		m := map[string]any{"course_id": courseID}
		for k, v := range base {
			m[k] = v
		}
		return m
	}

	var res errorBody
	ot.do(t, http.MethodPost, "/api/orders", with(uuid.NewString()), http.StatusNotFound, &res)
	if res.Error != "course not found" {
		t.Fatalf("unexpected error %q", res.Error)
	}

	ot.do(t, http.MethodPost, "/api/orders", with("bogus"), http.StatusBadRequest, nil)
	ot.do(t, http.MethodPost, "/api/orders", base, http.StatusUnprocessableEntity, &res)
	if _, ok := res.Fields["course_id"]; !ok {
		t.Fatalf("expected an error on course_id, got %v", res.Fields)
	}
}
