package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

type AdminController struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewAdminController(db *gorm.DB, stats *services.StatsService) *AdminController {
	return &AdminController{DB: db, Stats: stats}
}

// GetDashboard -> today's order count, revenue, status and category
// breakdowns for the admin overview.
func (ad *AdminController) GetDashboard(c *gin.Context) {
	stats, err := ad.Stats.Dashboard()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
