package models

// UserProfile identifies the authenticated user. Its lifecycle mirrors the
// session token: stored on login, wiped on logout or auth rejection.
type UserProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
