package handlers

import (
	"errors"
	"strings"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Login issues a token for valid operator credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username dan password wajib diisi")
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "dinonaktifkan") {
			response.Forbidden(c, err.Error())
			return
		}
		response.ServerError(c, "Gagal memproses login")
		return
	}

	response.Success(c, result)
}

// RefreshToken re-issues a token before it expires.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token wajib diisi")
		return
	}

	token, err := h.userService.RefreshToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "Token tidak valid atau sudah kedaluwarsa")
		return
	}

	response.Success(c, gin.H{"token": token})
}

// CreateUser registers a new operator account. Admin only.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data akun tidak valid")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		if strings.Contains(err.Error(), "sudah digunakan") {
			response.Conflict(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, user)
}

// Me returns the logged-in operator.
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		response.Unauthorized(c, "Silakan login terlebih dahulu")
		return
	}
	response.Success(c, user.(*models.User))
}
