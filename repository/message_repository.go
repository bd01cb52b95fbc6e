package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messenger-api/entity"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (repository MessageRepository) withViewPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sender").
		Preload("ReplyToMessage.Sender").
		Preload("Reactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Reactions.User")
}

// FindVisibleByID loads a non-deleted message only when userID belongs to
// its chat. Membership is folded into the query predicate, so absence and
// lack of access are indistinguishable: both are nil, nil.
func (repository MessageRepository) FindVisibleByID(ctx context.Context, db *gorm.DB, messageID, userID string) (*entity.Message, error) {
	var message entity.Message
	err := repository.withViewPreloads(db.WithContext(ctx)).
		Joins("JOIN t_chat_member cm ON cm.chat_id = t_message.chat_id").
		Where("t_message.id = ? AND cm.user_id = ? AND t_message.is_deleted = ?", messageID, userID, false).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindSenderMessage loads a non-deleted message only when senderID is its
// original sender. Used by the mutation paths.
func (repository MessageRepository) FindSenderMessage(ctx context.Context, db *gorm.DB, messageID, senderID string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Where("id = ? AND sender_id = ? AND is_deleted = ?", messageID, senderID, false).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (repository MessageRepository) FindChatMessages(ctx context.Context, db *gorm.DB, chatID string, offset, limit int) ([]entity.Message, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("chat_id = ? AND is_deleted = ?", chatID, false).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var messages []entity.Message
	err = repository.withViewPreloads(db.WithContext(ctx)).
		Where("chat_id = ? AND is_deleted = ?", chatID, false).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (repository MessageRepository) UpdateContent(ctx context.Context, db *gorm.DB, messageID string, text, mediaURL *string) error {
	return db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{
			"text":      text,
			"media_url": mediaURL,
			"is_edited": true,
		}).Error
}

// SoftDelete flags the message invisible. The row stays behind for replies
// and reactions that reference it.
func (repository MessageRepository) SoftDelete(ctx context.Context, db *gorm.DB, messageID string) error {
	return db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", messageID).
		Update("is_deleted", true).Error
}

// FindReaction returns the reaction row for the unique triple, or nil, nil
// when absent.
func (repository MessageRepository) FindReaction(ctx context.Context, db *gorm.DB, messageID, userID, emoji string) (*entity.MessageReaction, error) {
	var reaction entity.MessageReaction
	err := db.WithContext(ctx).
		Preload("User").
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (repository MessageRepository) AddReaction(ctx context.Context, db *gorm.DB, reaction *entity.MessageReaction) error {
	return db.WithContext(ctx).Create(reaction).Error
}

func (repository MessageRepository) RemoveReaction(ctx context.Context, db *gorm.DB, messageID, userID, emoji string) error {
	return db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&entity.MessageReaction{}).Error
}

func (repository MessageRepository) FindReactions(ctx context.Context, db *gorm.DB, messageID string) ([]entity.MessageReaction, error) {
	var reactions []entity.MessageReaction
	err := db.WithContext(ctx).
		Preload("User").
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}
