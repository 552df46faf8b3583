package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

type CartController struct {
	DB    *gorm.DB
	Carts *services.CartManager
}

func NewCartController(db *gorm.DB, carts *services.CartManager) *CartController {
	return &CartController{DB: db, Carts: carts}
}

func (cc *CartController) respondCart(c *gin.Context, code int, message string, items []models.CartItem, userID uint) {
	utils.RespondJSON(c, code, message, gin.H{
		"items": items,
		"total": cc.Carts.Total(userID),
	})
}

// GetCart -> current cart contents and total.
func (cc *CartController) GetCart(c *gin.Context) {
	user, err := currentUser(c, cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Cart contents", cc.Carts.Snapshot(user.ID), user.ID)
}

// AddItem -> put a menu item into the cart; re-adding merges quantities.
func (cc *CartController) AddItem(c *gin.Context) {
	user, err := currentUser(c, cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type request struct {
		MenuID              uint   `json:"menu_id" binding:"required"`
		Quantity            int    `json:"quantity" binding:"required"`
		SpecialInstructions string `json:"special_instructions"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := cc.DB.First(&menu, req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	items, err := cc.Carts.Add(user.ID, menu, req.Quantity, req.SpecialInstructions)
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Item added to cart", items, user.ID)
}

// UpdateItem -> set an entry's quantity; 0 removes it.
func (cc *CartController) UpdateItem(c *gin.Context) {
	user, err := currentUser(c, cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	type request struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, err := cc.Carts.SetQuantity(user.ID, uint(menuID), *req.Quantity)
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Cart updated", items, user.ID)
}

// RemoveItem -> drop an entry; removing an absent item succeeds.
func (cc *CartController) RemoveItem(c *gin.Context) {
	user, err := currentUser(c, cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	items := cc.Carts.Remove(user.ID, uint(menuID))
	cc.respondCart(c, http.StatusOK, "Item removed from cart", items, user.ID)
}

// ClearCart -> empty the cart unconditionally.
func (cc *CartController) ClearCart(c *gin.Context) {
	user, err := currentUser(c, cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cc.Carts.Clear(user.ID)
	cc.respondCart(c, http.StatusOK, "Cart cleared", nil, user.ID)
}
