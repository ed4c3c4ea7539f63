package auth

import "github.com/gorilla/sessions"

// SessionName — имя cookie с сессией
const SessionName = "academy_session"

// Ключи значений в сессии
const (
	SessionKeyAuthenticated = "authenticated"
	SessionKeyUserID        = "user_id"
	SessionKeyUsername      = "username"
	SessionKeyRole          = "role"
)

func NewSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	return store
}
