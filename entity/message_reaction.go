package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageReaction struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	MessageID string    `json:"messageId" gorm:"type:varchar(255);not null;uniqueIndex:idx_message_reaction"`
	UserID    string    `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_message_reaction"`
	Emoji     string    `json:"emoji" gorm:"type:varchar(16);not null;uniqueIndex:idx_message_reaction"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	User User `json:"user" gorm:"foreignKey:UserID;references:ID"`
}

func (reaction *MessageReaction) BeforeCreate(tx *gorm.DB) error {
	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	return nil
}
