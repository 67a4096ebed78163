// Package admin aggregates store-wide figures for the back office.
package admin

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/core/lesson"
	"github.com/irsalhamdi/course-selling/core/order"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalCourses     int64   `json:"total_courses"`
	PublishedCourses int64   `json:"published_courses"`
	TotalLessons     int64   `json:"total_lessons"`
	TotalSales       int64   `json:"total_sales"`
	Revenue          float64 `json:"revenue"`
}

// Compute scans the store on every call. Sales and revenue come from a single
// read of the paid orders so they always agree with each other.
func Compute(ctx context.Context, s *docstore.Store) (Summary, error) {
	courses := docstore.NewCollection[course.Course](s)

	total, err := courses.Count(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("counting courses: %w", err)
	}

	published, err := courses.Count(ctx, docstore.Filter{"published": true})
	if err != nil {
		return Summary{}, fmt.Errorf("counting published courses: %w", err)
	}

	lessons, err := docstore.NewCollection[lesson.Lesson](s).Count(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("counting lessons: %w", err)
	}

	paid, err := order.ListByStatus(ctx, s, order.Paid)
	if err != nil {
		return Summary{}, err
	}

	revenue := decimal.Zero
	for _, o := range paid {
		revenue = revenue.Add(decimal.NewFromFloat(o.Amount))
	}

	return Summary{
		TotalCourses:     total,
		PublishedCourses: published,
		TotalLessons:     lessons,
		TotalSales:       int64(len(paid)),
		Revenue:          revenue.Round(2).InexactFloat64(),
	}, nil
}
