package model

import (
	"time"
)

type UserRole string

const (
	Analyst UserRole = "analyst"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"Name"`
	Email     string    `gorm:"size:100;unique;not null" json:"Email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('analyst','teacher','admin');default:'analyst'" json:"Role"`
	Disabled  bool      `gorm:"default:false" json:"Disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"LastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"LastSeen"`
}

func (User) TableName() string {
	return "users"
}
