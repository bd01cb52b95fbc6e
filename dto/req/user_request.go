package req

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=20"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=20"`
}
