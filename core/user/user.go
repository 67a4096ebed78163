// Package user defines the account shape. No route creates or reads users yet.
package user

import (
	"github.com/irsalhamdi/course-selling/validate"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type UserNew struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// New validates nu and builds the record it describes. Users are active
// unless the input says otherwise.
func New(nu UserNew) (User, error) {
	if err := validate.Check(nu); err != nil {
		return User{}, err
	}

	active := true
	if nu.IsActive != nil {
		active = *nu.IsActive
	}

	return User{
		Name:     nu.Name,
		Email:    nu.Email,
		IsActive: active,
	}, nil
}
