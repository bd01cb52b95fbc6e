package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// chatAccessMessage deliberately conflates absence with lack of membership
// so callers cannot probe for chats they do not belong to.
const chatAccessMessage = "chat not found or you don't have access to it"

type ChatUsecaseImpl struct {
	*repository.ChatRepository
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewChatUsecase(chatRepository *repository.ChatRepository, userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger) ChatUsecase {
	return &ChatUsecaseImpl{
		ChatRepository: chatRepository,
		UserRepository: userRepository,
		Validate:       validate,
		DB:             DB,
		Logger:         logger,
	}
}

func (uc *ChatUsecaseImpl) StartPrivateChat(ctx context.Context, currentUserID string, request *req.StartPrivateChatRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, err
	}

	targetUserID := request.UserID
	if currentUserID == targetUserID {
		return res.ChatResponse{}, apperror.Validation("cannot start a chat with yourself")
	}

	users, err := uc.UserRepository.FindActiveByIDs(ctx, uc.DB, []string{currentUserID, targetUserID})
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to look up users", err)
	}
	if len(users) != 2 {
		return res.ChatResponse{}, apperror.Validation("one or both users not found")
	}

	pairKey := entity.PrivatePairKey(currentUserID, targetUserID)

	chat, err := uc.ChatRepository.FindByPairKey(ctx, uc.DB, pairKey)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to look up private chat", err)
	}

	if chat == nil {
		newChat := &entity.Chat{Type: enum.ChatTypePrivate, PairKey: &pairKey}
		createErr := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, newChat, []string{currentUserID, targetUserID})
		if createErr != nil {
			uc.Logger.WithError(createErr).Debug("Private chat create conflicted, reusing existing")
		}
		// Reload through the pair key: either our create won or a
		// concurrent duplicate did, the result is the same chat.
		chat, err = uc.ChatRepository.FindByPairKey(ctx, uc.DB, pairKey)
		if err != nil {
			return res.ChatResponse{}, apperror.Internal("failed to load private chat", err)
		}
		if chat == nil {
			return res.ChatResponse{}, apperror.Internal("failed to create private chat", createErr)
		}
	}

	return uc.assembleChat(ctx, *chat)
}

func (uc *ChatUsecaseImpl) CreateGroupChat(ctx context.Context, currentUserID string, request *req.CreateGroupChatRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, err
	}

	var creator entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &creator, currentUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.ChatResponse{}, apperror.NotFound("user not found")
		}
		return res.ChatResponse{}, apperror.Internal("failed to look up user", err)
	}

	chat := &entity.Chat{Type: enum.ChatTypeGroup, Name: &request.Name}
	if err := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, chat, []string{currentUserID}); err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to create group chat", err)
	}

	return uc.reloadChat(ctx, chat.ID, currentUserID)
}

func (uc *ChatUsecaseImpl) ListChats(ctx context.Context, userID string, filter *req.ChatFilterRequest) (res.PageResponse[res.ChatResponse], error) {
	if err := uc.Validate.Struct(filter); err != nil {
		return res.PageResponse[res.ChatResponse]{}, err
	}

	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.PageResponse[res.ChatResponse]{}, apperror.NotFound("user not found")
		}
		return res.PageResponse[res.ChatResponse]{}, apperror.Internal("failed to look up user", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	sort := filter.Sort
	if sort == "" {
		sort = "updated_at"
	}
	order := filter.Order
	if order == "" {
		order = "desc"
	}

	var chatType *enum.ChatType
	if filter.Type != "" {
		t := enum.ChatType(filter.Type)
		chatType = &t
	}

	chats, total, err := uc.ChatRepository.FindUserChats(
		ctx, uc.DB, userID, chatType,
		(page-1)*pageSize, pageSize,
		fmt.Sprintf("t_chat.%s %s", sort, strings.ToUpper(order)),
	)
	if err != nil {
		return res.PageResponse[res.ChatResponse]{}, apperror.Internal("failed to list chats", err)
	}

	data := make([]res.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		response, err := uc.assembleChat(ctx, chat)
		if err != nil {
			return res.PageResponse[res.ChatResponse]{}, err
		}
		data = append(data, response)
	}

	return res.PageResponse[res.ChatResponse]{Data: data, Page: page, PageSize: pageSize, Total: total}, nil
}

func (uc *ChatUsecaseImpl) GetChat(ctx context.Context, chatID, userID string) (res.ChatResponse, error) {
	return uc.reloadChat(ctx, chatID, userID)
}

func (uc *ChatUsecaseImpl) AddMember(ctx context.Context, chatID, callerID string, request *req.AddMemberRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, err
	}

	newMemberID := request.UserID
	chat, err := uc.ChatRepository.FindMemberChat(ctx, uc.DB, chatID, callerID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to load chat", err)
	}
	if chat == nil {
		return res.ChatResponse{}, apperror.NotFound(chatAccessMessage)
	}

	if chat.Type == enum.ChatTypePrivate {
		return res.ChatResponse{}, apperror.Validation("cannot add members to private chats")
	}

	if newMemberID == callerID {
		// caller is already a member by the check above
		return uc.assembleChat(ctx, *chat)
	}

	users, err := uc.UserRepository.FindActiveByIDs(ctx, uc.DB, []string{newMemberID, callerID})
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to look up users", err)
	}
	if len(users) != 2 {
		return res.ChatResponse{}, apperror.Validation("one or both users not found")
	}

	alreadyMember, err := uc.ChatRepository.IsMember(ctx, uc.DB, chatID, newMemberID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to check membership", err)
	}

	if !alreadyMember {
		if err := uc.ChatRepository.AddMember(ctx, uc.DB, chatID, newMemberID); err != nil {
			// A concurrent duplicate hit the unique (chat, user) index
			// first; already-a-member is the outcome we wanted anyway.
			nowMember, checkErr := uc.ChatRepository.IsMember(ctx, uc.DB, chatID, newMemberID)
			if checkErr != nil || !nowMember {
				return res.ChatResponse{}, apperror.Internal("failed to add member", err)
			}
		}
	}

	return uc.reloadChat(ctx, chatID, callerID)
}

func (uc *ChatUsecaseImpl) RemoveMember(ctx context.Context, chatID, targetUserID, callerID string) (res.ChatResponse, error) {
	chat, err := uc.ChatRepository.FindMemberChat(ctx, uc.DB, chatID, callerID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to load chat", err)
	}
	if chat == nil {
		return res.ChatResponse{}, apperror.NotFound(chatAccessMessage)
	}

	if chat.Type == enum.ChatTypePrivate {
		return res.ChatResponse{}, apperror.Validation("cannot remove members from private chats")
	}

	expected := 2
	if targetUserID == callerID {
		expected = 1
	}
	users, err := uc.UserRepository.FindActiveByIDs(ctx, uc.DB, []string{targetUserID, callerID})
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to look up users", err)
	}
	if len(users) != expected {
		return res.ChatResponse{}, apperror.Validation("one or both users not found")
	}

	if err := uc.ChatRepository.RemoveMember(ctx, uc.DB, chatID, targetUserID); err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to remove member", err)
	}

	refreshed, err := uc.ChatRepository.FindMemberChat(ctx, uc.DB, chatID, callerID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to load chat", err)
	}
	if refreshed == nil {
		// caller removed themselves; return the last state they could see
		return uc.assembleChat(ctx, *chat)
	}

	return uc.assembleChat(ctx, *refreshed)
}

func (uc *ChatUsecaseImpl) DeleteChat(ctx context.Context, chatID, userID string) error {
	chat, err := uc.ChatRepository.FindMemberChat(ctx, uc.DB, chatID, userID)
	if err != nil {
		return apperror.Internal("failed to load chat", err)
	}
	if chat == nil {
		return apperror.NotFound(chatAccessMessage)
	}

	if err := uc.ChatRepository.DeleteChat(ctx, uc.DB, chatID); err != nil {
		return apperror.Internal("failed to delete chat", err)
	}
	return nil
}

func (uc *ChatUsecaseImpl) reloadChat(ctx context.Context, chatID, userID string) (res.ChatResponse, error) {
	chat, err := uc.ChatRepository.FindMemberChat(ctx, uc.DB, chatID, userID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to load chat", err)
	}
	if chat == nil {
		return res.ChatResponse{}, apperror.NotFound(chatAccessMessage)
	}
	return uc.assembleChat(ctx, *chat)
}

// assembleChat builds the denormalized chat view: members come preloaded on
// the aggregate, the last visible message is fetched separately.
func (uc *ChatUsecaseImpl) assembleChat(ctx context.Context, chat entity.Chat) (res.ChatResponse, error) {
	lastMessage, err := uc.ChatRepository.FindLastMessage(ctx, uc.DB, chat.ID)
	if err != nil {
		return res.ChatResponse{}, apperror.Internal("failed to load last message", err)
	}
	return res.NewChatResponse(chat, lastMessage), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
