package model

import (
	"database/sql"
	"time"
)

type User struct {
	ID             int64
	Email          string
	Username       string
	FullName       sql.NullString
	Bio            sql.NullString
	AvatarURL      sql.NullString
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
