package domain

type Member struct {
	ID             int64   `db:"id"`
	Principal      string  `db:"principal"`
	ExternalID     string  `db:"external_id"`
	Nickname       string  `db:"nickname"`
	Address        string  `db:"address"`
	ProfileImage   *string `db:"profile_image"`
	HashedPassword *string `db:"hashed_password"`
	AppleLevel     int     `db:"apple_level"`
	Provider       *string `db:"provider"`
	ProviderID     *string `db:"provider_id"`
	CreatedAt      int64   `db:"created_at"`
	UpdatedAt      int64   `db:"updated_at"`
}

const InitialAppleLevel = 1
