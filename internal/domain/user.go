package domain

import "time"

// User represents a registered account holder.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}
