package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guideport/backend/internal/models"
	"github.com/guideport/backend/internal/services/guide"
	"github.com/guideport/backend/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles signup, login and token refresh
type AuthHandler struct {
	DB       *gorm.DB
	GuideSvc *guide.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, guideSvc *guide.Service) *AuthHandler {
	return &AuthHandler{DB: db, GuideSvc: guideSvc}
}

// Signup registers a new guide partner account
func (h *AuthHandler) Signup(c *gin.Context) {
	var input guide.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	g, err := h.GuideSvc.Signup(input)
	if err != nil {
		switch {
		case errors.Is(err, guide.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, guide.ErrInvalidReferralCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown referral code"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	tokens, err := utils.GenerateTokenPair(g.UserID, &g.ID, g.ContactEmail, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"guide": g, "tokens": tokens})
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account disabled"})
		return
	}

	var guideID *uuid.UUID
	if g, err := h.GuideSvc.GetByUser(user.ID); err == nil {
		guideID = &g.ID
	}

	tokens, err := utils.GenerateTokenPair(user.ID, guideID, user.Email, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	now := time.Now()
	h.DB.Model(&user).Update("last_login_at", &now)

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "is_admin": user.IsAdmin})
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	tokens, err := utils.GenerateTokenPair(claims.UserID, claims.GuideID, claims.Email, claims.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
