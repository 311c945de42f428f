package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pirouter/api/config"
	"github.com/pirouter/api/database"
	"github.com/pirouter/api/middleware"
	"github.com/pirouter/api/models"
	"github.com/pirouter/api/pkg/log"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// EnsureAdminUser creates the admin account on first boot, or resets its
// password when ADMIN_PASSWORD changed since the last start.
func EnsureAdminUser() error {
	username := config.AppConfig.AdminUsername
	password := config.AppConfig.AdminPassword

	var user models.User
	err := database.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, herr := models.HashPassword(password)
		if herr != nil {
			return herr
		}
		user = models.User{Username: username, HashedPassword: hashed}
		if cerr := database.DB.Create(&user).Error; cerr != nil {
			return cerr
		}
		log.Logger.Infof("created admin user %q", username)
		return nil
	}
	if err != nil {
		return err
	}

	if !models.CheckPassword(password, user.HashedPassword) {
		hashed, herr := models.HashPassword(password)
		if herr != nil {
			return herr
		}
		if uerr := database.DB.Model(&user).Update("hashed_password", hashed).Error; uerr != nil {
			return uerr
		}
		log.Logger.Infof("reset admin password for %q from environment", username)
	}
	return nil
}

// Login authenticates the admin and returns a bearer token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "username = ?", req.Username).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	if !models.CheckPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := middleware.GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ChangePassword updates the authenticated user's password.
func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if !models.CheckPassword(req.CurrentPassword, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := models.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(user).Update("hashed_password", hashed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}
