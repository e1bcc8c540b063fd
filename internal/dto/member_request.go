package dto

type MemberSignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nickname string `json:"nickname" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MemberProfileUpdateRequest struct {
	Nickname        string  `json:"nickname" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	ProfileImageURL *string `json:"profile_image_url"`
}
