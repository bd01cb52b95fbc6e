package entity

import "messenger-api/enum"

type User struct {
	BaseEntity
	FirstName    string    `json:"firstName" gorm:"type:varchar(50);not null"`
	LastName     string    `json:"lastName" gorm:"type:varchar(50);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password     string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         enum.Role `json:"role" gorm:"type:varchar(10);default:'USER'"`
	RefreshToken *string   `json:"-" gorm:"type:varchar(255)"`

	Messages    []Message    `json:"-" gorm:"foreignKey:SenderID"`
	Memberships []ChatMember `json:"-" gorm:"foreignKey:UserID"`
}
