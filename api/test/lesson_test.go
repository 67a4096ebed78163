package test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/core/lesson"
	"github.com/irsalhamdi/course-selling/docstore"
)

type lessonTest struct {
	*TestEnv
}

func TestLesson(t *testing.T) {
	env := NewTestEnv(t, docstore.NewMemory())
	ct := &courseTest{env}
	lt := &lessonTest{env}

	c := ct.createCourseOK(t, "Go basics", 10, true)
	other := ct.createCourseOK(t, "Rust basics", 10, true)

	for _, order := range []int{3, 1, 2} {
		lt.createLessonOK(t, c, order)
	}
	lt.createLessonOK(t, other, 0)

	lt.listLessonsOK(t, c.ID, []int{1, 2, 3})
	lt.listLessonsOK(t, other.ID, []int{0})
	lt.listLessonsOK(t, uuid.NewString(), []int{})

	lt.createLessonInvalid(t, c)
}

func (lt *lessonTest) createLessonOK(t *testing.T, c course.Course, order int) {
	t.Helper()

	in := map[string]any{
		"title":     "Lesson",
		"order":     order,
		"course_id": "somewhere-else",
	}

	var res idBody
	lt.do(t, http.MethodPost, "/api/courses/"+c.ID+"/lessons", in, http.StatusOK, &res)
	if res.ID == "" {
		t.Fatal("expected a lesson id")
	}
}

func (lt *lessonTest) listLessonsOK(t *testing.T, courseID string, orders []int) {
	t.Helper()

	var got []lesson.Lesson
	lt.do(t, http.MethodGet, "/api/courses/"+courseID+"/lessons", nil, http.StatusOK, &got)

	if len(got) != len(orders) {
		t.Fatalf("expected %d lessons, got %d", len(orders), len(got))
	}
	for i, l := range got {
		if l.Order != orders[i] {
			t.Fatalf("lesson %d: expected order %d, got %d", i, orders[i], l.Order)
		}
		if l.CourseID != courseID {
			t.Fatalf("lesson %d: expected course %s, got %s", i, courseID, l.CourseID)
		}
		if l.ID == "" {
			t.Fatalf("lesson %d has no id", i)
		}
	}
}

func (lt *lessonTest) createLessonInvalid(t *testing.T, c course.Course) {
	t.Helper()

	var res errorBody
	lt.do(t, http.MethodPost, "/api/courses/"+c.ID+"/lessons", map[string]any{"order": -1}, http.StatusUnprocessableEntity, &res)
	if _, ok := res.Fields["title"]; !ok {
		t.Fatalf("expected an error on title, got %v", res.Fields)
	}
	if _, ok := res.Fields["order"]; !ok {
		t.Fatalf("expected an error on order, got %v", res.Fields)
	}

	lt.do(t, http.MethodPost, "/api/courses/"+uuid.NewString()+"/lessons", map[string]any{"title": "x"}, http.StatusNotFound, nil)
	lt.do(t, http.MethodPost, "/api/courses/bogus/lessons", map[string]any{"title": "x"}, http.StatusBadRequest, nil)
}
