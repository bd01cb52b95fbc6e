package usecase

import (
	"context"

	"messenger-api/dto/req"
	"messenger-api/dto/res"
)

type MessageUsecase interface {
	CreateMessage(ctx context.Context, senderID string, request *req.CreateMessageRequest) (res.MessageResponse, error)
	ListMessages(ctx context.Context, userID string, filter *req.MessageFilterRequest) (res.PageResponse[res.MessageResponse], error)
	GetMessage(ctx context.Context, messageID, userID string) (res.MessageResponse, error)
	UpdateMessage(ctx context.Context, messageID, userID string, request *req.UpdateMessageRequest) (res.MessageResponse, error)
	DeleteMessage(ctx context.Context, messageID, userID string) error
	AddReaction(ctx context.Context, messageID, userID string, request *req.ReactionRequest) (res.ReactionResponse, error)
	RemoveReaction(ctx context.Context, messageID, userID, emoji string) error
	ListReactions(ctx context.Context, messageID, userID string) ([]res.ReactionResponse, error)
}
