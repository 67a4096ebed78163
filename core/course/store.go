package course

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/validate"
)

func Create(ctx context.Context, s *docstore.Store, nc CourseNew, now time.Time) (string, error) {
	if err := validate.Check(nc); err != nil {
		return "", err
	}

	tags := nc.Tags
	if tags == nil {
		tags = []string{}
	}

	c := Course{
		Title:        nc.Title,
		Subtitle:     nc.Subtitle,
		Description:  nc.Description,
		Price:        *nc.Price,
		ThumbnailURL: nc.ThumbnailURL,
		Category:     nc.Category,
		Level:        nc.Level,
		Published:    nc.Published,
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := docstore.NewCollection[Course](s).Insert(ctx, c)
	if err != nil {
		return "", fmt.Errorf("inserting course: %w", err)
	}
	return id, nil
}

// List returns every course, or only those in the given publish state.
func List(ctx context.Context, s *docstore.Store, published *bool) ([]Course, error) {
	filter := docstore.Filter{}
	if published != nil {
		filter["published"] = *published
	}

	cs, err := docstore.NewCollection[Course](s).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return cs, nil
}

func Fetch(ctx context.Context, s *docstore.Store, id string) (Course, error) {
	c, err := docstore.NewCollection[Course](s).FindOne(ctx, id)
	if err != nil {
		return Course{}, fmt.Errorf("fetching course[%s]: %w", id, err)
	}
	return c, nil
}

// Update applies the provided fields and stamps updated_at with now.
func Update(ctx context.Context, s *docstore.Store, id string, up CourseUp, now time.Time) error {
	if err := validate.Check(up); err != nil {
		return err
	}

	set := map[string]any{"updated_at": now}
	if up.Title != nil {
		set["title"] = *up.Title
	}
	if up.Subtitle != nil {
		set["subtitle"] = *up.Subtitle
	}
	if up.Description != nil {
		set["description"] = *up.Description
	}
	if up.Price != nil {
		set["price"] = *up.Price
	}
	if up.ThumbnailURL != nil {
		set["thumbnail_url"] = *up.ThumbnailURL
	}
	if up.Category != nil {
		set["category"] = *up.Category
	}
	if up.Level != nil {
		set["level"] = *up.Level
	}
	if up.Published != nil {
		set["published"] = *up.Published
	}
	if up.Tags != nil {
		tags := *up.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}

	n, err := docstore.NewCollection[Course](s).UpdateByID(ctx, id, set)
	if err != nil {
		return fmt.Errorf("updating course[%s]: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("updating course[%s]: %w", id, docstore.ErrNotFound)
	}
	return nil
}

// Delete removes the course. Its lessons and orders are left in place.
func Delete(ctx context.Context, s *docstore.Store, id string) error {
	n, err := docstore.NewCollection[Course](s).DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting course[%s]: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("deleting course[%s]: %w", id, docstore.ErrNotFound)
	}
	return nil
}
