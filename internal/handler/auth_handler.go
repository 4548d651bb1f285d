package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/imadegun/prod-tracking-app/internal/model"
	"github.com/imadegun/prod-tracking-app/pkg/database"
	"github.com/imadegun/prod-tracking-app/pkg/jwtutil"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// Login authenticates a user by username and password and issues a JWT
// carrying the user's role and company
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthAttempt()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_credentials")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	trackQuery := prometheus.TrackDBOperation("query")
	queryStart := time.Now()
	var user model.User
	result := database.GetDB().Preload("Company").Where("username = ?", req.Username).First(&user)
	trackQuery(queryStart)
	if result.Error != nil {
		log.Warn("User not found", zap.String("username", req.Username))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !user.Company.IsActive {
		log.Warn("Login attempt for disabled company",
			zap.String("username", req.Username),
			zap.Uint("company_id", user.CompanyID))
		prometheus.RecordAuthError("company_disabled")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company is disabled"})
	}

	now := time.Now()
	if err := database.GetDB().Model(&user).Update("last_login", now).Error; err != nil {
		log.Error("Failed to stamp last login", zap.Error(err))
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, user.CompanyID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.RecordAuthSuccess()
	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role),
		zap.Uint("company_id", user.CompanyID))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":         user.ID,
			"username":   user.Username,
			"full_name":  user.FullName,
			"role":       user.Role,
			"company_id": user.CompanyID,
		},
	})
}

// Me returns the authenticated caller's identity
func Me(c echo.Context) error {
	var user model.User
	result := database.GetDB().First(&user, userID(c))
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}
