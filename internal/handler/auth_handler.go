package handler

import (
	"net/http"

	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
)

// Authenticator checks credentials. *auth.Directory satisfies it.
type Authenticator interface {
	Login(username, password string) (model.User, bool)
}

// TokenIssuer issues session tokens. *auth.TokenIssuer satisfies it.
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// AuthHandler handles login requests.
type AuthHandler struct {
	users  Authenticator
	tokens TokenIssuer
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users Authenticator, tokens TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	user, ok := h.users.Login(req.Username, req.Password)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorised, model.ErrUnauthorised.Message, h.logger)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error().Err(err).Str("username", user.Username).Msg("failed to issue token")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to issue token", h.logger)
		return
	}

	h.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login successful")
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}
