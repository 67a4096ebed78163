package order

import "time"

type Status string

const (
	Pending  Status = "pending"
	Paid     Status = "paid"
	Refunded Status = "refunded"
	Failed   Status = "failed"
)

type Order struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	BuyerName  string    `json:"buyer_name"`
	BuyerEmail string    `json:"buyer_email"`
	Amount     float64   `json:"amount"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderNew is what a buyer submits. There is no amount: it always comes from
// the course price.
type OrderNew struct {
	CourseID   string `json:"course_id" validate:"required"`
	BuyerName  string `json:"buyer_name" validate:"required"`
	BuyerEmail string `json:"buyer_email" validate:"required"`
}
