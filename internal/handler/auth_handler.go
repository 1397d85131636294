package handler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balludanga/merikahani-backend/internal/auth"
	"github.com/balludanga/merikahani-backend/internal/model"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type AuthHandler struct {
	users          UserStore
	jwtSecret      string
	googleClientID string
	httpClient     *http.Client
}

func NewAuthHandler(users UserStore, jwtSecret, googleClientID string) *AuthHandler {
	return &AuthHandler{
		users:          users,
		jwtSecret:      jwtSecret,
		googleClientID: googleClientID,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		slog.Error("error checking email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	existing, err = h.users.GetByUsername(req.Username)
	if err != nil {
		slog.Error("error checking username", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:          req.Email,
		Username:       req.Username,
		FullName:       sql.NullString{String: req.FullName, Valid: req.FullName != ""},
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.users.Create(user); err != nil {
		slog.Error("error creating user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		slog.Error("error loading user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	h.issueToken(c, user)
}

// GoogleLogin verifies a Google ID token and finds or creates the
// matching user.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Google token"})
		return
	}

	resp, err := h.httpClient.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(req.Token))
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var payload struct {
		Aud     string `json:"aud"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Error("error decoding google token info", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	if payload.Aud != h.googleClientID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google client ID"})
		return
	}

	if payload.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google account missing email"})
		return
	}

	user, err := h.users.GetByEmail(payload.Email)
	if err != nil {
		slog.Error("error loading user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user == nil {
		hashed, err := auth.HashPassword(req.Token)
		if err != nil {
			slog.Error("error hashing placeholder password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		now := time.Now().UTC()
		user = &model.User{
			Email:          payload.Email,
			Username:       strings.SplitN(payload.Email, "@", 2)[0],
			FullName:       sql.NullString{String: payload.Name, Valid: payload.Name != ""},
			AvatarURL:      sql.NullString{String: payload.Picture, Valid: payload.Picture != ""},
			HashedPassword: hashed,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := h.users.Create(user); err != nil {
			slog.Error("error creating google user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	h.issueToken(c, user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) issueToken(c *gin.Context, user *model.User) {
	token, err := auth.CreateAccessToken(h.jwtSecret, user.ID, auth.AccessTokenTTL)
	if err != nil {
		slog.Error("error creating access token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName.String,
		Bio:       user.Bio.String,
		AvatarURL: user.AvatarURL.String,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
