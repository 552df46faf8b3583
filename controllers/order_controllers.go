package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
	Stats  *services.StatsService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, stats *services.StatsService) *OrderController {
	return &OrderController{DB: db, Orders: orders, Stats: stats}
}

// PlaceOrder -> turn the caller's cart into a pending order.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	user, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type request struct {
		Notes string `json:"notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Place(identityOf(user), req.Notes)
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders -> the caller's order history, most recent first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	user, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	orders, err := oc.Orders.ListForUser(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}

// GetOrderByID -> detail of one order; employees may only read their own.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	user, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.Get(uint(id))
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	if user.Role != models.RoleAdmin && order.UserID != user.ID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders -> admin view of the full ledger, optionally filtered by a
// search string (id, user name, user email) and an exact status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidStatus(status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order status"))
		return
	}

	orders, err := oc.Stats.SearchOrders(c.Query("query"), status)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// AdvanceOrder -> move an order one step forward in the workflow.
func (oc *OrderController) AdvanceOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.Advance(uint(id))
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order advanced", order)
}

// UpdateOrderStatus -> admin override to any status, e.g. cancellation.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	type request struct {
		Status         string     `json:"status" binding:"required"`
		EstimatedReady *time.Time `json:"estimated_ready"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.SetStatus(uint(id), req.Status, req.EstimatedReady)
	if err != nil {
		utils.RespondError(c, serviceErrorStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
