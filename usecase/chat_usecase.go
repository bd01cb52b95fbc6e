package usecase

import (
	"context"

	"messenger-api/dto/req"
	"messenger-api/dto/res"
)

type ChatUsecase interface {
	StartPrivateChat(ctx context.Context, currentUserID string, request *req.StartPrivateChatRequest) (res.ChatResponse, error)
	CreateGroupChat(ctx context.Context, currentUserID string, request *req.CreateGroupChatRequest) (res.ChatResponse, error)
	ListChats(ctx context.Context, userID string, filter *req.ChatFilterRequest) (res.PageResponse[res.ChatResponse], error)
	GetChat(ctx context.Context, chatID, userID string) (res.ChatResponse, error)
	AddMember(ctx context.Context, chatID, callerID string, request *req.AddMemberRequest) (res.ChatResponse, error)
	RemoveMember(ctx context.Context, chatID, targetUserID, callerID string) (res.ChatResponse, error)
	DeleteChat(ctx context.Context, chatID, userID string) error
}
