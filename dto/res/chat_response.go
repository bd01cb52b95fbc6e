package res

import (
	"time"

	"messenger-api/entity"
	"messenger-api/enum"
)

type ChatMemberResponse struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	User   UserSummary `json:"user"`
}

type LastMessageResponse struct {
	ID        string           `json:"id"`
	Text      *string          `json:"text"`
	Type      enum.MessageType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	Sender    UserSummary      `json:"sender"`
}

type ChatResponse struct {
	ID          string               `json:"id"`
	Type        enum.ChatType        `json:"type"`
	Name        *string              `json:"name"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Members     []ChatMemberResponse `json:"members"`
	LastMessage *LastMessageResponse `json:"lastMessage"`
}

// NewChatResponse assembles the denormalized chat view from the aggregate
// and its most recent visible message.
func NewChatResponse(chat entity.Chat, lastMessage *entity.Message) ChatResponse {
	members := make([]ChatMemberResponse, 0, len(chat.Members))
	for _, member := range chat.Members {
		members = append(members, ChatMemberResponse{
			ID:     member.ID,
			UserID: member.UserID,
			User:   NewUserSummary(member.User),
		})
	}

	response := ChatResponse{
		ID:        chat.ID,
		Type:      chat.Type,
		Name:      chat.Name,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
		Members:   members,
	}

	if lastMessage != nil {
		response.LastMessage = &LastMessageResponse{
			ID:        lastMessage.ID,
			Text:      lastMessage.Text,
			Type:      lastMessage.Type,
			CreatedAt: lastMessage.CreatedAt,
			Sender:    NewUserSummary(lastMessage.Sender),
		}
	}

	return response
}
