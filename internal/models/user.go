package models

import (
	"github.com/google/uuid"
)

// User is a profile row keyed by the auth provider's user id
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	AvatarURL    *string   `gorm:"column:avatar_url" json:"avatar_url"`
	Email        *string   `gorm:"column:email" json:"email"`
	Name         *string   `gorm:"column:name" json:"name"`
	IsPaidStatus bool      `gorm:"column:is_paid_status;not null;default:false" json:"is_paid_status"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}
