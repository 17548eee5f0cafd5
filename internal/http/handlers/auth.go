package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"charityfund/internal/middleware"
)

// AuthConfig holds what the login endpoint needs to mint tokens. The
// configured superuser is the only account the service itself authenticates;
// other callers bring tokens issued by cmd/token.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	SuperuserEmail    string
	SuperuserPassword string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthLogin exchanges the first superuser's credentials for a bearer token.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decode(w, r, &req) {
		return
	}
	if !a.Auth.matchesSuperuser(req.Email, req.Password) {
		a.logger(r).Warn().Msg("rejected login")
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.SignJWT(a.Auth.JWTSecret, middleware.NewTokenClaims(a.Auth.SuperuserEmail, true, a.Auth.TokenTTL))
	if err != nil {
		a.logger(r).Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.Auth.TokenTTL.Seconds()),
	})
}

func (c AuthConfig) matchesSuperuser(email, password string) bool {
	if c.SuperuserEmail == "" || c.SuperuserPassword == "" || c.JWTSecret == "" {
		return false
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), c.SuperuserEmail)
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.SuperuserPassword)) == 1
	return emailOK && passwordOK
}
