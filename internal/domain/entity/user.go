package entity

import "time"

// User representa al usuario que registra reabastecimientos y ventas.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
