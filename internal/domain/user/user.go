package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// User represents a cat owner
type User struct {
	id        objectid.ID
	userName  string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with a fresh id
func NewUser(userName, email string) (*User, error) {
	userName = strings.TrimSpace(userName)
	email = strings.TrimSpace(email)

	if userName == "" {
		return nil, fmt.Errorf("%w: user_name is required", errs.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", errs.ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &User{
		id:        objectid.New(),
		userName:  userName,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a user from storage
func Reconstruct(id objectid.ID, userName, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		userName:  userName,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

func (u *User) ID() objectid.ID {
	return u.id
}

func (u *User) UserName() string {
	return u.userName
}

func (u *User) Email() string {
	return u.email
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Rename changes the user name. Email is never touched.
func (u *User) Rename(userName string) error {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return fmt.Errorf("%w: user_name is required", errs.ErrInvalidInput)
	}
	u.userName = userName
	u.updatedAt = time.Now().UTC()
	return nil
}
