package services

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
)

// StatsService derives read views from the menu table and the order ledger.
// Everything here is side-effect free.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type CategoryStat struct {
	Category  string `json:"category"`
	Available int64  `json:"available"`
	Total     int64  `json:"total"`
}

type DashboardStats struct {
	OrdersToday  int64            `json:"orders_today"`
	RevenueTotal float64          `json:"revenue_total"`
	RevenueToday float64          `json:"revenue_today"`
	StatusCounts map[string]int64 `json:"status_counts"`
	Categories   []CategoryStat   `json:"categories"`
}

// Dashboard aggregates the admin overview. "Today" means the current local
// calendar date, not a rolling 24h window, and revenue only counts
// completed orders.
func (s *StatsService) Dashboard() (*DashboardStats, error) {
	var orders []models.Order
	if err := s.DB.Find(&orders).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &DashboardStats{
		StatusCounts: make(map[string]int64, len(models.Statuses)),
	}
	for _, status := range models.Statuses {
		stats.StatusCounts[status] = 0
	}

	for _, order := range orders {
		stats.StatusCounts[order.Status]++

		today := sameLocalDay(order.OrderTime, now)
		if today {
			stats.OrdersToday++
		}
		if order.Status == models.StatusCompleted {
			stats.RevenueTotal += order.Total
			if today {
				stats.RevenueToday += order.Total
			}
		}
	}

	var menus []models.Menu
	if err := s.DB.Find(&menus).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategoryStat, len(models.Categories))
	for _, category := range models.Categories {
		byCategory[category] = &CategoryStat{Category: category}
	}
	for _, menu := range menus {
		cs, ok := byCategory[menu.Category]
		if !ok {
			continue
		}
		cs.Total++
		if menu.Available {
			cs.Available++
		}
	}
	for _, category := range models.Categories {
		stats.Categories = append(stats.Categories, *byCategory[category])
	}

	return stats, nil
}

// SearchOrders filters the ledger by a case-insensitive substring over
// order id, user name and user email, ANDed with an optional exact status.
// Results keep the ledger's most-recent-first order.
func (s *StatsService) SearchOrders(query, status string) ([]models.Order, error) {
	var orders []models.Order
	tx := s.DB.Preload("OrderItems").Order("id desc")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Find(&orders).Error; err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders, nil
	}

	matched := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if strings.Contains(strconv.FormatUint(uint64(order.ID), 10), q) ||
			strings.Contains(strings.ToLower(order.UserName), q) ||
			strings.Contains(strings.ToLower(order.UserEmail), q) {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

// BrowseMenu is the employee-facing catalog view: available items only,
// optionally narrowed to one category and a case-insensitive substring over
// name and description.
func (s *StatsService) BrowseMenu(query, category string) ([]models.Menu, error) {
	var menus []models.Menu
	tx := s.DB.Where("available = ?", true).Order("id")
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	if err := tx.Find(&menus).Error; err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return menus, nil
	}

	matched := make([]models.Menu, 0, len(menus))
	for _, menu := range menus {
		if strings.Contains(strings.ToLower(menu.Name), q) ||
			strings.Contains(strings.ToLower(menu.Description), q) {
			matched = append(matched, menu)
		}
	}
	return matched, nil
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
