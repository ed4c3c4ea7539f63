package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"academy-backend/auth"
	"academy-backend/middleware"
	"academy-backend/models"
	"academy-backend/services"

	"github.com/gorilla/sessions"
)

type AuthHandler struct {
	users      *services.UserService
	jwtService *auth.JWTService
	sessions   *sessions.CookieStore
}

func NewAuthHandler(users *services.UserService, jwtService *auth.JWTService, store *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		sessions:   store,
	}
}

// Login обрабатывает вход пользователя: заводит сессию и выдает токен
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Printf("❌ Error decoding login request: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(loginReq.Username, loginReq.Password)
	if err != nil {
		log.Printf("❌ Error authenticating user %s: %v", loginReq.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		log.Printf("❌ Failed login for username: %s", loginReq.Username)
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	session, _ := h.sessions.Get(r, auth.SessionName)
	session.Values[auth.SessionKeyAuthenticated] = true
	session.Values[auth.SessionKeyUserID] = user.ID
	session.Values[auth.SessionKeyUsername] = user.Username
	session.Values[auth.SessionKeyRole] = user.Role
	if err := session.Save(r, w); err != nil {
		log.Printf("❌ Error saving session for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("❌ Error generating token for user %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Скрываем пароль в ответе
	user.Password = ""

	log.Printf("✅ User logged in successfully: %s (role: %s)", user.Username, user.Role)
	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// Logout завершает сессию
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessions.Get(r, auth.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("❌ Error destroying session: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register регистрирует нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Printf("❌ Error decoding register request: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if registerReq.Username == "" || registerReq.Password == "" || registerReq.Email == "" {
		respondError(w, http.StatusBadRequest, "Username, password and email are required")
		return
	}

	role := registerReq.Role
	switch role {
	case models.RoleAdmin, models.RoleStudent, models.RoleTeacher:
	default:
		respondError(w, http.StatusBadRequest, "Role must be admin, student or teacher")
		return
	}

	user := &models.User{
		Username: registerReq.Username,
		Password: registerReq.Password,
		Email:    registerReq.Email,
		LastName: registerReq.LastName,
	}

	if _, err := h.users.RegisterUser(user, role); err != nil {
		respondServiceError(w, err)
		return
	}

	user.Password = ""
	log.Printf("✅ User registered successfully: %s (role: %s)", user.Username, user.Role)
	respondJSON(w, http.StatusCreated, user)
}

// CurrentUser возвращает пользователя текущей сессии или токена
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.users.FindByUsername(principal.Username)
	if err != nil {
		log.Printf("❌ Error fetching user %s: %v", principal.Username, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, user)
}
