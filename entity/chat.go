package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"messenger-api/enum"
)

type Chat struct {
	BaseEntity
	Type enum.ChatType `json:"type" gorm:"type:varchar(7);not null"`
	Name *string       `json:"name" gorm:"type:varchar(100)"`
	// PairKey holds the sorted "userA:userB" pair for PRIVATE chats. The
	// unique index keeps concurrent find-or-create requests from producing
	// two private chats for the same pair.
	PairKey *string `json:"-" gorm:"type:varchar(255);uniqueIndex"`

	Members  []ChatMember `json:"members" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Messages []Message    `json:"-" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

type ChatMember struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(255)"`
	ChatID string `json:"chatId" gorm:"type:varchar(255);not null;uniqueIndex:idx_chat_member"`
	UserID string `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_chat_member"`

	User User `json:"user" gorm:"foreignKey:UserID;references:ID"`
}

func (member *ChatMember) BeforeCreate(tx *gorm.DB) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	return nil
}

// PrivatePairKey builds the canonical pair key for a two-party chat,
// identical for both orderings of the same pair.
func PrivatePairKey(userAID, userBID string) string {
	if userAID > userBID {
		userAID, userBID = userBID, userAID
	}
	return userAID + ":" + userBID
}
