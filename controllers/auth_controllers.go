package controllers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

// demoOTP is the fixed verification code of the demo deployment. There is
// no real code delivery; the "sent" code shows up in the notification log.
const demoOTP = "123456"

type AuthController struct {
	DB       *gorm.DB
	Notifier *services.Notifier

	mu         sync.Mutex
	challenges map[string]string // challenge id -> email
}

func NewAuthController(db *gorm.DB, notifier *services.Notifier) *AuthController {
	return &AuthController{
		DB:         db,
		Notifier:   notifier,
		challenges: make(map[string]string),
	}
}

// Register creates an unverified account and starts the OTP challenge.
// Accounts whose email contains "admin" get the admin role, everyone else
// is an employee.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
		EmployeeID string `json:"employee_id"`
		Department string `json:"department"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email is already registered"))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := models.RoleEmployee
	if strings.Contains(req.Email, "admin") {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashed,
		Role:       role,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	challengeID := ac.issueChallenge(user.Email)

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered, verification code sent", gin.H{
		"user_id":      user.ID,
		"challenge_id": challengeID,
	})
}

// VerifyOTP completes registration. The demo accepts only the fixed code.
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	type request struct {
		ChallengeID string `json:"challenge_id" binding:"required"`
		Code        string `json:"code" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ac.mu.Lock()
	email, ok := ac.challenges[req.ChallengeID]
	ac.mu.Unlock()
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown or expired challenge"))
		return
	}

	if req.Code != demoOTP {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid verification code"))
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if err := ac.DB.Model(&user).Update("verified", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	user.Verified = true

	ac.mu.Lock()
	delete(ac.challenges, req.ChallengeID)
	ac.mu.Unlock()

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Account verified", gin.H{
		"token": token,
		"user":  user,
	})
}

// ResendOTP issues a fresh challenge for an unverified account.
func (ac *AuthController) ResendOTP(c *gin.Context) {
	type request struct {
		Email string `json:"email" binding:"required,email"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	if user.Verified {
		utils.RespondError(c, http.StatusBadRequest, errors.New("account is already verified"))
		return
	}

	challengeID := ac.issueChallenge(user.Email)

	utils.RespondJSON(c, http.StatusOK, "Verification code sent", gin.H{
		"challenge_id": challengeID,
	})
}

// Login checks credentials and returns a JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if !utils.CheckPassword(user.Password, input.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if !user.Verified {
		utils.RespondError(c, http.StatusForbidden, errors.New("account is not verified"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile returns the caller's account.
func (ac *AuthController) GetProfile(c *gin.Context) {
	user, err := currentUser(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

func (ac *AuthController) issueChallenge(email string) string {
	challengeID := uuid.NewString()

	ac.mu.Lock()
	ac.challenges[challengeID] = email
	ac.mu.Unlock()

	ac.Notifier.Dispatch(email, "Cafeteria Verification Code",
		"Your verification code is "+demoOTP)

	return challengeID
}
