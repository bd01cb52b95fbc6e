package res

import (
	"time"

	"messenger-api/entity"
	"messenger-api/enum"
)

type ReplyPreviewResponse struct {
	ID     string           `json:"id"`
	Text   *string          `json:"text"`
	Type   enum.MessageType `json:"type"`
	Sender UserSummary      `json:"sender"`
}

type ReactionResponse struct {
	ID        string      `json:"id"`
	MessageID string      `json:"messageId"`
	UserID    string      `json:"userId"`
	Emoji     string      `json:"emoji"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

type MessageResponse struct {
	ID               string                `json:"id"`
	ChatID           string                `json:"chatId"`
	SenderID         string                `json:"senderId"`
	Text             *string               `json:"text"`
	Type             enum.MessageType      `json:"type"`
	MediaURL         *string               `json:"mediaUrl"`
	ReplyToMessageID *string               `json:"replyToMessageId"`
	IsDeleted        bool                  `json:"isDeleted"`
	IsEdited         bool                  `json:"isEdited"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Sender           UserSummary           `json:"sender"`
	ReplyToMessage   *ReplyPreviewResponse `json:"replyToMessage"`
	Reactions        []ReactionResponse    `json:"reactions"`
}

func NewReactionResponse(reaction entity.MessageReaction) ReactionResponse {
	return ReactionResponse{
		ID:        reaction.ID,
		MessageID: reaction.MessageID,
		UserID:    reaction.UserID,
		Emoji:     reaction.Emoji,
		CreatedAt: reaction.CreatedAt,
		User:      NewUserSummary(reaction.User),
	}
}

// NewMessageResponse assembles the denormalized message view: sender
// summary, reply preview and reaction list.
func NewMessageResponse(message entity.Message) MessageResponse {
	reactions := make([]ReactionResponse, 0, len(message.Reactions))
	for _, reaction := range message.Reactions {
		reactions = append(reactions, NewReactionResponse(reaction))
	}

	response := MessageResponse{
		ID:               message.ID,
		ChatID:           message.ChatID,
		SenderID:         message.SenderID,
		Text:             message.Text,
		Type:             message.Type,
		MediaURL:         message.MediaURL,
		ReplyToMessageID: message.ReplyToMessageID,
		IsDeleted:        message.IsDeleted,
		IsEdited:         message.IsEdited,
		CreatedAt:        message.CreatedAt,
		UpdatedAt:        message.UpdatedAt,
		Sender:           NewUserSummary(message.Sender),
		Reactions:        reactions,
	}

	if message.ReplyToMessage != nil {
		response.ReplyToMessage = &ReplyPreviewResponse{
			ID:     message.ReplyToMessage.ID,
			Text:   message.ReplyToMessage.Text,
			Type:   message.ReplyToMessage.Type,
			Sender: NewUserSummary(message.ReplyToMessage.Sender),
		}
	}

	return response
}
