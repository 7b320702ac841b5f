package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Email     string
	DOB       string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveUsername builds the unique username from name and date of birth:
// lower-cased first and last name concatenated with the dob, dashes stripped.
// Two users with identical name+dob collide on the unique index; kept for
// compatibility with the reference system.
func DeriveUsername(firstName, lastName, dob string) string {
	return strings.ToLower(firstName) + strings.ToLower(lastName) + strings.ReplaceAll(dob, "-", "")
}
