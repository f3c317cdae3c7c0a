// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The store assigns the integer primary
// key; username and email carry unique indexes whose names are relied on for
// conflict mapping.
type UserModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Nama      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
