package models

// User is an account in the relational store. Only the user repository
// creates rows; nothing updates or deletes them.
type User struct {
	ID             uint   `gorm:"primaryKey"                    json:"id"`
	Email          string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null"             json:"-"` // never serialised
	IsActive       bool   `gorm:"not null;default:true"         json:"is_active"`
	IsAdmin        bool   `gorm:"not null;default:false"        json:"is_admin"`
}

func (User) TableName() string { return "users" }
