package model

import "time"

// User is a registered account. Credentials are stored as entered; this
// application does not hash passwords.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Password    string
	CreatedDate time.Time `gorm:"column:created_date"`
}

func (User) TableName() string { return "users" }
