package order

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/course-selling/core/course"
	"github.com/irsalhamdi/course-selling/docstore"
	"github.com/irsalhamdi/course-selling/validate"
)

// Create records a mock checkout for the referenced course. The order is
// marked paid straight away.
func Create(ctx context.Context, s *docstore.Store, no OrderNew, now time.Time) (Order, error) {
	if err := validate.Check(no); err != nil {
		return Order{}, err
	}

	c, err := course.Fetch(ctx, s, no.CourseID)
	if err != nil {
		return Order{}, err
	}

	ord := Order{
		CourseID:   c.ID,
		BuyerName:  no.BuyerName,
		BuyerEmail: no.BuyerEmail,
		Amount:     c.Price,
		Status:     Paid,
		CreatedAt:  now,
	}

	id, err := docstore.NewCollection[Order](s).Insert(ctx, ord)
	if err != nil {
		return Order{}, fmt.Errorf("inserting order for course[%s]: %w", no.CourseID, err)
	}
	ord.ID = id

	return ord, nil
}

func Fetch(ctx context.Context, s *docstore.Store, id string) (Order, error) {
	ord, err := docstore.NewCollection[Order](s).FindOne(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("fetching order[%s]: %w", id, err)
	}
	return ord, nil
}

func ListByStatus(ctx context.Context, s *docstore.Store, status Status) ([]Order, error) {
	ords, err := docstore.NewCollection[Order](s).Find(ctx, docstore.Filter{"status": status})
	if err != nil {
		return nil, fmt.Errorf("listing %s orders: %w", status, err)
	}
	return ords, nil
}
