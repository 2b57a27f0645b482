package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	FullName     string    `gorm:"column:fullname;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Admin is a separate identity class that bypasses the roles/permissions
// graph entirely. It is not a row in users with a special role.
type Admin struct {
	ID           int64     `gorm:"primaryKey"`
	FullName     string    `gorm:"column:fullname;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (Admin) TableName() string {
	return "admins"
}
