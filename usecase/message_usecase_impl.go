package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/entity"
	"messenger-api/enum"
	"messenger-api/repository"
)

const messageAccessMessage = "message not found or you don't have access to it"

type MessageUsecaseImpl struct {
	*repository.MessageRepository
	*repository.ChatRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewMessageUsecase(messageRepository *repository.MessageRepository, chatRepository *repository.ChatRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger) MessageUsecase {
	return &MessageUsecaseImpl{
		MessageRepository: messageRepository,
		ChatRepository:    chatRepository,
		Validate:          validate,
		DB:                DB,
		Logger:            logger,
	}
}

// validateMessageContent enforces the content shape per message type: TEXT
// carries text and no media URL, every other type carries a media URL and
// no text.
func validateMessageContent(messageType enum.MessageType, text, mediaURL *string) error {
	hasText := text != nil && *text != ""
	hasMedia := mediaURL != nil && *mediaURL != ""

	if messageType == enum.MessageTypeText {
		if !hasText {
			return apperror.Validation("text messages require a text body")
		}
		if hasMedia {
			return apperror.Validation("text messages cannot carry a media URL")
		}
		return nil
	}

	if !hasMedia {
		return apperror.Validation("media messages require a media URL")
	}
	if hasText {
		return apperror.Validation("media messages cannot carry a text body")
	}
	return nil
}

func (uc *MessageUsecaseImpl) CreateMessage(ctx context.Context, senderID string, request *req.CreateMessageRequest) (res.MessageResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.MessageResponse{}, err
	}

	messageType := request.Type
	if messageType == "" {
		messageType = enum.MessageTypeText
	}
	if err := validateMessageContent(messageType, request.Text, request.MediaURL); err != nil {
		return res.MessageResponse{}, err
	}

	member, err := uc.ChatRepository.IsMember(ctx, uc.DB, request.ChatID, senderID)
	if err != nil {
		return res.MessageResponse{}, apperror.Internal("failed to check membership", err)
	}
	if !member {
		return res.MessageResponse{}, apperror.NotFound(chatAccessMessage)
	}

	if request.ReplyToMessageID != nil {
		parent, err := uc.MessageRepository.FindVisibleByID(ctx, uc.DB, *request.ReplyToMessageID, senderID)
		if err != nil {
			return res.MessageResponse{}, apperror.Internal("failed to look up reply target", err)
		}
		if parent == nil || parent.ChatID != request.ChatID {
			return res.MessageResponse{}, apperror.Validation("reply message not found or is deleted")
		}
	}

	message := &entity.Message{
		ChatID:           request.ChatID,
		SenderID:         senderID,
		Text:             request.Text,
		Type:             messageType,
		MediaURL:         request.MediaURL,
		ReplyToMessageID: request.ReplyToMessageID,
	}

	if err := uc.MessageRepository.Save(ctx, uc.DB, message); err != nil {
		uc.Logger.WithError(err).Error("Failed to create message")
		return res.MessageResponse{}, apperror.Internal("failed to create message", err)
	}

	// Posting bumps the chat so updated_at ordering surfaces active chats.
	if err := uc.ChatRepository.TouchChat(ctx, uc.DB, request.ChatID); err != nil {
		uc.Logger.WithError(err).Warn("Failed to touch chat after message create")
	}

	return uc.reloadMessage(ctx, message.ID, senderID)
}

func (uc *MessageUsecaseImpl) ListMessages(ctx context.Context, userID string, filter *req.MessageFilterRequest) (res.PageResponse[res.MessageResponse], error) {
	if err := uc.Validate.Struct(filter); err != nil {
		return res.PageResponse[res.MessageResponse]{}, err
	}

	member, err := uc.ChatRepository.IsMember(ctx, uc.DB, filter.ChatID, userID)
	if err != nil {
		return res.PageResponse[res.MessageResponse]{}, apperror.Internal("failed to check membership", err)
	}
	if !member {
		return res.PageResponse[res.MessageResponse]{}, apperror.NotFound(chatAccessMessage)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	messages, total, err := uc.MessageRepository.FindChatMessages(ctx, uc.DB, filter.ChatID, (page-1)*pageSize, pageSize)
	if err != nil {
		return res.PageResponse[res.MessageResponse]{}, apperror.Internal("failed to list messages", err)
	}

	data := make([]res.MessageResponse, 0, len(messages))
	for _, message := range messages {
		data = append(data, res.NewMessageResponse(message))
	}

	return res.PageResponse[res.MessageResponse]{Data: data, Page: page, PageSize: pageSize, Total: total}, nil
}

func (uc *MessageUsecaseImpl) GetMessage(ctx context.Context, messageID, userID string) (res.MessageResponse, error) {
	return uc.reloadMessage(ctx, messageID, userID)
}

func (uc *MessageUsecaseImpl) UpdateMessage(ctx context.Context, messageID, userID string, request *req.UpdateMessageRequest) (res.MessageResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.MessageResponse{}, err
	}

	message, err := uc.MessageRepository.FindSenderMessage(ctx, uc.DB, messageID, userID)
	if err != nil {
		return res.MessageResponse{}, apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return res.MessageResponse{}, apperror.NotFound("message not found or you don't have permission to edit it")
	}

	text := request.Text
	mediaURL := request.MediaURL
	if text == nil {
		text = message.Text
	}
	if mediaURL == nil {
		mediaURL = message.MediaURL
	}
	if err := validateMessageContent(message.Type, text, mediaURL); err != nil {
		return res.MessageResponse{}, err
	}

	if err := uc.MessageRepository.UpdateContent(ctx, uc.DB, messageID, text, mediaURL); err != nil {
		return res.MessageResponse{}, apperror.Internal("failed to update message", err)
	}

	return uc.reloadMessage(ctx, messageID, userID)
}

func (uc *MessageUsecaseImpl) DeleteMessage(ctx context.Context, messageID, userID string) error {
	message, err := uc.MessageRepository.FindSenderMessage(ctx, uc.DB, messageID, userID)
	if err != nil {
		return apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return apperror.NotFound("message not found or you don't have permission to delete it")
	}

	if err := uc.MessageRepository.SoftDelete(ctx, uc.DB, messageID); err != nil {
		return apperror.Internal("failed to delete message", err)
	}
	return nil
}

func (uc *MessageUsecaseImpl) AddReaction(ctx context.Context, messageID, userID string, request *req.ReactionRequest) (res.ReactionResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ReactionResponse{}, err
	}

	message, err := uc.MessageRepository.FindVisibleByID(ctx, uc.DB, messageID, userID)
	if err != nil {
		return res.ReactionResponse{}, apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return res.ReactionResponse{}, apperror.NotFound(messageAccessMessage)
	}

	existing, err := uc.MessageRepository.FindReaction(ctx, uc.DB, messageID, userID, request.Emoji)
	if err != nil {
		return res.ReactionResponse{}, apperror.Internal("failed to look up reaction", err)
	}
	if existing != nil {
		return res.NewReactionResponse(*existing), nil
	}

	reaction := &entity.MessageReaction{MessageID: messageID, UserID: userID, Emoji: request.Emoji}
	if err := uc.MessageRepository.AddReaction(ctx, uc.DB, reaction); err != nil {
		// Concurrent duplicate on the (message, user, emoji) index: the
		// reaction exists either way, so hand back whichever row won.
		existing, findErr := uc.MessageRepository.FindReaction(ctx, uc.DB, messageID, userID, request.Emoji)
		if findErr != nil || existing == nil {
			return res.ReactionResponse{}, apperror.Internal("failed to add reaction", err)
		}
		return res.NewReactionResponse(*existing), nil
	}

	created, err := uc.MessageRepository.FindReaction(ctx, uc.DB, messageID, userID, request.Emoji)
	if err != nil || created == nil {
		return res.ReactionResponse{}, apperror.Internal("failed to load reaction", err)
	}
	return res.NewReactionResponse(*created), nil
}

// RemoveReaction is a best-effort delete: removing a reaction that is not
// there succeeds quietly.
func (uc *MessageUsecaseImpl) RemoveReaction(ctx context.Context, messageID, userID, emoji string) error {
	message, err := uc.MessageRepository.FindVisibleByID(ctx, uc.DB, messageID, userID)
	if err != nil {
		return apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return apperror.NotFound(messageAccessMessage)
	}

	if err := uc.MessageRepository.RemoveReaction(ctx, uc.DB, messageID, userID, emoji); err != nil {
		return apperror.Internal("failed to remove reaction", err)
	}
	return nil
}

func (uc *MessageUsecaseImpl) ListReactions(ctx context.Context, messageID, userID string) ([]res.ReactionResponse, error) {
	message, err := uc.MessageRepository.FindVisibleByID(ctx, uc.DB, messageID, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return nil, apperror.NotFound(messageAccessMessage)
	}

	reactions, err := uc.MessageRepository.FindReactions(ctx, uc.DB, messageID)
	if err != nil {
		return nil, apperror.Internal("failed to list reactions", err)
	}

	responses := make([]res.ReactionResponse, 0, len(reactions))
	for _, reaction := range reactions {
		responses = append(responses, res.NewReactionResponse(reaction))
	}
	return responses, nil
}

func (uc *MessageUsecaseImpl) reloadMessage(ctx context.Context, messageID, userID string) (res.MessageResponse, error) {
	message, err := uc.MessageRepository.FindVisibleByID(ctx, uc.DB, messageID, userID)
	if err != nil {
		return res.MessageResponse{}, apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return res.MessageResponse{}, apperror.NotFound(messageAccessMessage)
	}
	return res.NewMessageResponse(*message), nil
}
