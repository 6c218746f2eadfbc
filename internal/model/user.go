package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Phone     string    `gorm:"size:20;unique;not null" json:"phone"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// PhoneWhitelist 手机号白名单，未登记的号码不允许登录
type PhoneWhitelist struct {
	BaseModel
	Phone string `gorm:"size:20;unique;not null" json:"phone"`
}

func (PhoneWhitelist) TableName() string {
	return "phone_whitelists"
}
