package course

import "time"

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle"`
	Description  *string   `json:"description"`
	Price        float64   `json:"price"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Category     *string   `json:"category"`
	Level        *string   `json:"level"`
	Published    bool      `json:"published"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CourseNew struct {
	Title        string   `json:"title" validate:"required"`
	Subtitle     *string  `json:"subtitle"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Category     *string  `json:"category"`
	Level        *string  `json:"level"`
	Published    bool     `json:"published"`
	Tags         []string `json:"tags"`
}

// CourseUp carries a partial update: nil fields are left untouched.
type CourseUp struct {
	Title        *string   `json:"title" validate:"omitempty,min=1"`
	Subtitle     *string   `json:"subtitle"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price" validate:"omitempty,gte=0"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Category     *string   `json:"category"`
	Level        *string   `json:"level"`
	Published    *bool     `json:"published"`
	Tags         *[]string `json:"tags"`
}
