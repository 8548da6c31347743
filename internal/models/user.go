package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID                 uint64         `db:"id"`
	Fullname           string         `db:"fullname"`
	Username           string         `db:"username"`
	Password           string         `db:"password"`
	Progress           int32          `db:"progress"`
	PasswordResetToken sql.NullString `db:"password_reset_token"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}
