package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func dateRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

// GetSalesSummary aggregates completed orders in the requested range.
// Defaults to the last 30 days.
func (rc *ReportController) GetSalesSummary(c *gin.Context) {
	from, to := dateRange(c)

	var summary struct {
		OrderCount    int64   `json:"order_count"`
		Revenue       float64 `json:"revenue"`
		DiscountTotal float64 `json:"discount_total"`
		TaxTotal      float64 `json:"tax_total"`
	}
	err := rc.DB.Model(&models.Order{}).
		Select("COUNT(*) AS order_count, "+
			"COALESCE(SUM(total_amount), 0) AS revenue, "+
			"COALESCE(SUM(discount_amount), 0) AS discount_total, "+
			"COALESCE(SUM(tax_amount), 0) AS tax_total").
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCompleted, from, to).
		Scan(&summary).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to build sales summary: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to build sales summary")
		return
	}

	var cancelled int64
	rc.DB.Model(&models.Order{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCancelled, from, to).
		Count(&cancelled)

	utils.RespondJSON(c, http.StatusOK, "Sales summary fetched successfully", gin.H{
		"from":            from.Format("2006-01-02"),
		"to":              to.Format("2006-01-02"),
		"order_count":     summary.OrderCount,
		"cancelled_count": cancelled,
		"revenue":         summary.Revenue,
		"discount_total":  summary.DiscountTotal,
		"tax_total":       summary.TaxTotal,
	})
}

// GetPopularItems ranks menu items by quantity sold on completed orders.
func (rc *ReportController) GetPopularItems(c *gin.Context) {
	from, to := dateRange(c)

	limit := 10
	var rows []struct {
		MenuItemID   uint    `json:"menu_item_id"`
		Name         string  `json:"name"`
		QuantitySold int64   `json:"quantity_sold"`
		Revenue      float64 `json:"revenue"`
	}
	err := rc.DB.Table("order_items").
		Select("order_items.menu_item_id, menu_items.name, "+
			"SUM(order_items.quantity) AS quantity_sold, "+
			"SUM(order_items.price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?",
			models.OrderStatusCompleted, from, to).
		Group("order_items.menu_item_id, menu_items.name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to build popular items report: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to build popular items report")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Popular items fetched successfully", rows)
}

// GetDailyRevenue buckets completed order revenue per calendar day.
func (rc *ReportController) GetDailyRevenue(c *gin.Context) {
	from, to := dateRange(c)

	var rows []struct {
		Day        string  `json:"day"`
		OrderCount int64   `json:"order_count"`
		Revenue    float64 `json:"revenue"`
	}
	err := rc.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS order_count, "+
			"COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCompleted, from, to).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to build daily revenue report: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to build daily revenue report")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily revenue fetched successfully", rows)
}
