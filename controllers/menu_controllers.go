package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/events"
	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
	"github.com/officeeats/cafeteria-app/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewMenuController(db *gorm.DB, stats *services.StatsService) *MenuController {
	return &MenuController{DB: db, Stats: stats}
}

// BrowseMenus -> employee-facing list. Unavailable items never show up
// here; search and category filters come from query params.
func (mc *MenuController) BrowseMenus(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.ValidCategory(category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
		return
	}

	menus, err := mc.Stats.BrowseMenu(c.Query("query"), category)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> detail of one menu item.
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// GetAllMenus -> admin list including unavailable items.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Order("id").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

type menuRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	ImageURL        string  `json:"image_url"`
	Category        string  `json:"category" binding:"required"`
	Available       *bool   `json:"available"`
	PreparationTime int     `json:"preparation_time"`
}

func (r menuRequest) validate() error {
	if !models.ValidCategory(r.Category) {
		return errors.New("invalid category")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	if r.PreparationTime < 0 {
		return errors.New("preparation time must not be negative")
	}
	return nil
}

// CreateMenu -> admin adds a menu item.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	menu := models.Menu{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Category:        req.Category,
		Available:       available,
		PreparationTime: req.PreparationTime,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(menu)

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> admin edits a menu item. Existing cart and order lines hold
// snapshots, so price or availability changes here never touch them.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	type request struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		ImageURL        *string  `json:"image_url"`
		Category        *string  `json:"category"`
		Available       *bool    `json:"available"`
		PreparationTime *int     `json:"preparation_time"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		menu.Price = *req.Price
	}
	if req.ImageURL != nil {
		menu.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
			return
		}
		menu.Category = *req.Category
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}
	if req.PreparationTime != nil {
		if *req.PreparationTime < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("preparation time must not be negative"))
			return
		}
		menu.PreparationTime = *req.PreparationTime
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(menu)

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu -> admin removes a menu item. Orders keep their snapshots.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(menu)

	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": menu.ID})
}
