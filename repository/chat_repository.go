package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"messenger-api/entity"
	"messenger-api/enum"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// FindByPairKey returns the private chat for a canonical user pair, or
// nil, nil when none exists.
func (repository ChatRepository) FindByPairKey(ctx context.Context, db *gorm.DB, pairKey string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).
		Preload("Members.User").
		Where("pair_key = ?", pairKey).
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateChatWithMembers creates the chat and its initial member rows in one
// transaction, so a chat never exists without its members.
func (repository ChatRepository) CreateChatWithMembers(ctx context.Context, db *gorm.DB, chat *entity.Chat, memberIDs []string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		members := make([]entity.ChatMember, 0, len(memberIDs))
		for _, userID := range memberIDs {
			members = append(members, entity.ChatMember{ChatID: chat.ID, UserID: userID})
		}
		return tx.Create(&members).Error
	})
}

// FindMemberChat loads a chat only when userID is one of its members.
// Absence and lack of membership are indistinguishable: both are nil, nil.
func (repository ChatRepository) FindMemberChat(ctx context.Context, db *gorm.DB, chatID, userID string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).
		Joins("JOIN t_chat_member cm ON cm.chat_id = t_chat.id").
		Where("t_chat.id = ? AND cm.user_id = ?", chatID, userID).
		Preload("Members.User").
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (repository ChatRepository) FindUserChats(ctx context.Context, db *gorm.DB, userID string, chatType *enum.ChatType, offset, limit int, order string) ([]entity.Chat, int64, error) {
	base := func() *gorm.DB {
		query := db.WithContext(ctx).
			Model(&entity.Chat{}).
			Joins("JOIN t_chat_member cm ON cm.chat_id = t_chat.id").
			Where("cm.user_id = ?", userID)
		if chatType != nil {
			query = query.Where("t_chat.type = ?", *chatType)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var chats []entity.Chat
	err := base().
		Preload("Members.User").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, 0, err
	}

	return chats, total, nil
}

// FindLastMessage returns the most recent visible message of a chat with
// its sender, or nil, nil when the chat has none.
func (repository ChatRepository) FindLastMessage(ctx context.Context, db *gorm.DB, chatID string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ? AND is_deleted = ?", chatID, false).
		Order("created_at DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (repository ChatRepository) IsMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repository ChatRepository) AddMember(ctx context.Context, db *gorm.DB, chatID, userID string) error {
	member := entity.ChatMember{ChatID: chatID, UserID: userID}
	return db.WithContext(ctx).Create(&member).Error
}

// RemoveMember deletes the membership row if present. Removing an absent
// member is a no-op, not an error.
func (repository ChatRepository) RemoveMember(ctx context.Context, db *gorm.DB, chatID, userID string) error {
	return db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&entity.ChatMember{}).Error
}

// TouchChat bumps the chat's updated_at so recency ordering follows message
// activity.
func (repository ChatRepository) TouchChat(ctx context.Context, db *gorm.DB, chatID string) error {
	return db.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", time.Now()).Error
}

// DeleteChat permanently removes the chat with its members, messages and
// reactions. Explicit cascade inside one transaction keeps the behavior
// identical across database engines.
func (repository ChatRepository) DeleteChat(ctx context.Context, db *gorm.DB, chatID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&entity.Message{}).Select("id").Where("chat_id = ?", chatID)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&entity.MessageReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("chat_id = ?", chatID).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&entity.ChatMember{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", chatID).Delete(&entity.Chat{}).Error
	})
}
