package dto

type MemberResponse struct {
	ID           int64   `json:"id"`
	ExternalID   string  `json:"external_id"`
	Email        string  `json:"email"`
	Nickname     string  `json:"nickname"`
	Address      string  `json:"address"`
	ProfileImage *string `json:"profile_image_url"`
	AppleLevel   int     `json:"apple_level"`
}

type LoginResponse struct {
	Token  string         `json:"token"`
	Member MemberResponse `json:"member"`
}

type DuplicateResponse struct {
	IsDuplicate bool `json:"is_duplicate"`
}
