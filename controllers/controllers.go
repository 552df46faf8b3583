package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
)

// currentUser loads the authenticated caller set by the auth middleware.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		return nil, errors.New("user id not found in context")
	}

	userID, ok := userIDInterface.(uint)
	if !ok {
		return nil, errors.New("invalid user id type")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func identityOf(user *models.User) services.Identity {
	return services.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
}

// serviceErrorStatus maps the services' sentinel errors to HTTP codes.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrItemNotInCart),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
