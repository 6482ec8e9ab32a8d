package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/massage-scheduler/internal/config"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/middleware"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	passwordHash []byte
	secret       string
	now          func() time.Time
}

// NewAuthHandler hashes the configured owner password once so logins compare
// against a bcrypt hash.
func NewAuthHandler(cfg *config.Config) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		passwordHash: hash,
		secret:       cfg.JWTSecret,
		now:          time.Now,
	}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong password.")
		return
	}

	expires := h.now().Add(tokenTTL)
	token, err := h.generateToken(expires)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires.UTC(),
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": middleware.OwnerSubject,
		"exp": expires.Unix(),
		"iat": h.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
