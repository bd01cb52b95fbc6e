package req

type StartPrivateChatRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type CreateGroupChatRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type ChatFilterRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
	Type     string `query:"type" validate:"omitempty,oneof=PRIVATE GROUP"`
	Sort     string `query:"sort" validate:"omitempty,oneof=updated_at created_at"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
}
