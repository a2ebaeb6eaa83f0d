package api

import (
	"encoding/json"
	"net/http"

	"github.com/rpupo63/project-hub-backend/auth"
	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/rpupo63/project-hub-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UserFinder is the account lookup surface the handler depends on.
// *database.UserRepo satisfies it.
type UserFinder interface {
	FindByEmail(email string) (*models.User, error)
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     UserFinder
	tokens    auth.TokenIssuer
}

func newAuthHandler(users UserFinder, tokens auth.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session describes the signed-in identity returned by login and me.
type Session struct {
	Token   string `json:"token,omitempty"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// login signs an operator in by email and password
// @Summary Sign in
// @Description Exchanges email and password for a session token carrying the admin role flag.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} Session "Session token and identity"
// @Failure 401 {object} map[string]interface{} "Unauthorized - invalid credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.users.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		token, err := h.tokens.Generate(*user)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign session token")
			h.responder.WriteError(w, errs.NewInternalError("failed to create session"))
			return
		}

		h.responder.WriteJSON(w, Session{
			Token:   token,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		})
	}
}

// logout acknowledges sign-out
// @Summary Sign out
// @Description Sessions are stateless tokens; sign-out is acknowledged and the client drops its token.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "signed out",
		})
	}
}

// me returns the current session identity
// @Summary Current session
// @Description Returns the identity and role flag of the bearer token.
// @Tags Auth
// @Produce json
// @Success 200 {object} Session "Current identity"
// @Failure 401 {object} map[string]interface{} "Unauthorized - no valid session"
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ctxGetClaims(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing session"))
			return
		}

		h.responder.WriteJSON(w, Session{
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})
	}
}
