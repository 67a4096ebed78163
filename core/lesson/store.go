package lesson

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/validate"
)

// Create stores a lesson under courseID, which must name an existing course.
func Create(ctx context.Context, s *docstore.Store, courseID string, nl LessonNew, now time.Time) (string, error) {
	if err := validate.Check(nl); err != nil {
		return "", err
	}

	c, err := course.Fetch(ctx, s, courseID)
	if err != nil {
		return "", err
	}

	l := Lesson{
		CourseID:    c.ID,
		Title:       nl.Title,
		Content:     nl.Content,
		VideoURL:    nl.VideoURL,
		Order:       nl.Order,
		FreePreview: nl.FreePreview,
		CreatedAt:   now,
	}

	id, err := docstore.NewCollection[Lesson](s).Insert(ctx, l)
	if err != nil {
		return "", fmt.Errorf("inserting lesson for course[%s]: %w", courseID, err)
	}
	return id, nil
}

// ListByCourse returns the lessons of a course by ascending order. Lessons
// sharing an order keep their insertion order.
func ListByCourse(ctx context.Context, s *docstore.Store, courseID string) ([]Lesson, error) {
	if uid, err := docstore.ParseID(courseID); err == nil {
		courseID = uid.String()
	}

	ls, err := docstore.NewCollection[Lesson](s).Find(ctx, docstore.Filter{"course_id": courseID})
	if err != nil {
		return nil, fmt.Errorf("listing lessons of course[%s]: %w", courseID, err)
	}

	sort.SliceStable(ls, func(i, j int) bool {
		return ls[i].Order < ls[j].Order
	})
	return ls, nil
}
