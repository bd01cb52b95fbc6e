package entity

import "messenger-api/enum"

type Message struct {
	BaseEntity
	ChatID           string           `json:"chatId" gorm:"type:varchar(255);not null;index"`
	SenderID         string           `json:"senderId" gorm:"type:varchar(255);not null"`
	Text             *string          `json:"text" gorm:"type:text"`
	Type             enum.MessageType `json:"type" gorm:"type:varchar(10);default:'TEXT'"`
	MediaURL         *string          `json:"mediaUrl" gorm:"type:text"`
	ReplyToMessageID *string          `json:"replyToMessageId" gorm:"type:varchar(255)"`
	IsDeleted        bool             `json:"isDeleted" gorm:"default:false"`
	IsEdited         bool             `json:"isEdited" gorm:"default:false"`

	Chat           Chat              `json:"-" gorm:"foreignKey:ChatID;references:ID"`
	Sender         User              `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	ReplyToMessage *Message          `json:"-" gorm:"foreignKey:ReplyToMessageID;references:ID"`
	Reactions      []MessageReaction `json:"-" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}
