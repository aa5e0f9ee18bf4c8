package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zatoka-backend/models"
	"zatoka-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login and issues an opaque session token for
// the admin back-office.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondServiceError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := ac.DB.Model(&admin).Update("token", token).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": admin.Username,
		"fullName": admin.FullName,
	})
}

// Logout handles POST /api/auth/logout for the authenticated admin.
func (ac *AuthController) Logout(c *gin.Context) {
	adminID, ok := c.Get("adminID")
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not logged in")
		return
	}
	if err := ac.DB.Model(&models.Admin{}).Where("id = ?", adminID).Update("token", "").Error; err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
