package req

import "messenger-api/enum"

type CreateMessageRequest struct {
	ChatID           string           `json:"chatId" validate:"required,uuid"`
	Text             *string          `json:"text" validate:"omitempty,max=4000"`
	Type             enum.MessageType `json:"type" validate:"omitempty,oneof=TEXT IMAGE VIDEO AUDIO FILE"`
	MediaURL         *string          `json:"mediaUrl" validate:"omitempty,url"`
	ReplyToMessageID *string          `json:"replyToMessageId" validate:"omitempty,uuid"`
}

type UpdateMessageRequest struct {
	Text     *string `json:"text" validate:"omitempty,max=4000"`
	MediaURL *string `json:"mediaUrl" validate:"omitempty,url"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,min=1,max=10"`
}

type MessageFilterRequest struct {
	ChatID   string `query:"chatId" validate:"required,uuid"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}
