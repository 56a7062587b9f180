package model

type CreateBookingRequest struct {
	ItemID int64    `json:"itemId" validate:"required,min=1"`
	Start  DateTime `json:"start" validate:"required"`
	End    DateTime `json:"end" validate:"required"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=200"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,min=1"`
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Available   *bool   `json:"available"`
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"max=200"`
}

type CreateRequestRequest struct {
	Description string `json:"description" validate:"required,max=200"`
}
