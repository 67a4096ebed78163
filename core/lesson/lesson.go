package lesson

import "time"

type Lesson struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content"`
	VideoURL    *string   `json:"video_url"`
	Order       int       `json:"order"`
	FreePreview bool      `json:"free_preview"`
	CreatedAt   time.Time `json:"created_at"`
}

// LessonNew is the creation payload. CourseID is accepted but always replaced
// by the course the lesson is created under.
type LessonNew struct {
	CourseID    string  `json:"course_id"`
	Title       string  `json:"title" validate:"required"`
	Content     *string `json:"content"`
	VideoURL    *string `json:"video_url"`
	Order       int     `json:"order" validate:"gte=0"`
	FreePreview bool    `json:"free_preview"`
}
