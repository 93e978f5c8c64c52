package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/errs"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 24 * time.Hour

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	secret    []byte
}

func newAuthHandler(userRepo *database.UserRepo, jwtSecret string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		secret:    []byte(jwtSecret),
	}
}

// LoginRequest carries the credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

// login verifies credentials and issues a signed token carrying the user id
// and the admin capability. The capability is computed once here; every
// downstream policy check consumes it from the Viewer, never from the store.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		// Same response for unknown email and wrong password.
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		expiresAt := time.Now().Add(tokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": user.ID.String(),
			"adm": user.IsAdmin,
			"exp": expiresAt.Unix(),
			"iat": time.Now().Unix(),
		})

		signed, err := token.SignedString(h.secret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{
			Token:     signed,
			ExpiresAt: expiresAt,
			IsAdmin:   user.IsAdmin,
		})
	}
}
