package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"academy-backend/auth"

	"github.com/gorilla/sessions"
)

// Principal — аутентифицированный пользователь текущего запроса
type Principal struct {
	UserID   uint
	Username string
	Role     string
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *sessions.CookieStore
}

func NewAuthMiddleware(jwtService *auth.JWTService, store *sessions.CookieStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   store,
	}
}

// RequireAuth пропускает запрос с активной сессией либо с валидным
// Bearer токеном. Всё остальное получает 401.
func (am *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := am.fromSession(r); ok {
			next.ServeHTTP(w, r.WithContext(SetPrincipal(r.Context(), principal)))
			return
		}

		if principal, ok := am.fromBearerToken(r); ok {
			next.ServeHTTP(w, r.WithContext(SetPrincipal(r.Context(), principal)))
			return
		}

		log.Printf("❌ Unauthenticated request: %s %s", r.Method, r.URL.Path)
		http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
	})
}

func (am *AuthMiddleware) fromSession(r *http.Request) (*Principal, bool) {
	session, err := am.sessions.Get(r, auth.SessionName)
	if err != nil {
		return nil, false
	}
	authenticated, _ := session.Values[auth.SessionKeyAuthenticated].(bool)
	if !authenticated {
		return nil, false
	}
	userID, _ := session.Values[auth.SessionKeyUserID].(uint)
	username, _ := session.Values[auth.SessionKeyUsername].(string)
	role, _ := session.Values[auth.SessionKeyRole].(string)
	return &Principal{UserID: userID, Username: username, Role: role}, true
}

func (am *AuthMiddleware) fromBearerToken(r *http.Request) (*Principal, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return nil, false
	}

	claims, err := am.jwtService.ValidateToken(bearerToken[1])
	if err != nil {
		log.Printf("❌ Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
		return nil, false
	}
	return &Principal{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, true
}

type contextKey string

const principalKey contextKey = "principal"

func SetPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func GetPrincipal(ctx context.Context) *Principal {
	if principal, ok := ctx.Value(principalKey).(*Principal); ok {
		return principal
	}
	return nil
}
