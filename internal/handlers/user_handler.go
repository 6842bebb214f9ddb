package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"notes_service/internal/dto"
	"notes_service/internal/redis"
	"notes_service/internal/services"
	"notes_service/pkg/responses"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
	tokens  *redis.Service
}

func NewUserHandler(service *services.UserService, tokens *redis.Service) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// Register creates a new account
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.service.Register(req.Email, req.Name, req.Password)
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusConflict, responses.NewErrorResponse("Email is already registered", ""))
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Account created successfully", user))
}

// Login verifies credentials and returns an access token
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrPermissionDenied) {
		c.JSON(http.StatusUnauthorized, responses.NewErrorResponse("Invalid email or password", ""))
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Logged in successfully", gin.H{
		"token": token,
		"user":  user,
	}))
}

// Logout revokes the current access token
func (h *UserHandler) Logout(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	if h.tokens != nil {
		tokenID := c.GetString("token_id")
		if exp, exists := c.Get("token_expires_at"); exists && tokenID != "" {
			ttl := time.Until(exp.(time.Time))
			if err := h.tokens.RevokeToken(c.Request.Context(), tokenID, ttl); err != nil {
				c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to log out", ""))
				return
			}
		}
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Logged out successfully", nil))
}

// Me returns the requester's profile
func (h *UserHandler) Me(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(requesterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Profile retrieved successfully", user))
}

// UpdateMe updates the requester's profile
func (h *UserHandler) UpdateMe(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.service.UpdateProfile(requesterID, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Profile updated successfully", user))
}

// DeleteMe soft-deletes the requester's account. Owned notes keep their
// ownership chain and come back if the account is restored.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(requesterID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Account deactivated successfully", nil))
}

// DeleteMePermanent removes the account record entirely
func (h *UserHandler) DeleteMePermanent(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.HardDelete(requesterID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Account permanently deleted", nil))
}

// RestoreAccount reactivates a soft-deleted account using credentials
func (h *UserHandler) RestoreAccount(c *gin.Context) {
	var req dto.RestoreAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.service.RestoreByCredentials(req.Email, req.Password)
	if errors.Is(err, services.ErrPermissionDenied) {
		c.JSON(http.StatusUnauthorized, responses.NewErrorResponse("Invalid email or password", ""))
		return
	}
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusConflict, responses.NewErrorResponse("Email is in use by another account", ""))
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Account restored successfully", user))
}
