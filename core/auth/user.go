package auth

import "time"

// UserProfile is the backend's representation of an authenticated Telegram
// user. Profiles are replaced wholesale on re-login; partial updates go
// through the session layer, which re-persists the merged profile.
type UserProfile struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
