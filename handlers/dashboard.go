package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"smartdues/database"
	"smartdues/models"
	"smartdues/utils"
)

func GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, buildDashboard(getUserID(c), models.Today()))
}

// buildDashboard computes the three summary values with independent
// queries against the current persisted state. No caching.
func buildDashboard(userID uint, today models.DateOnly) gin.H {
	monthStart := models.NewDate(today.Year(), today.Month(), 1)
	nextMonthStart := models.DateOnly{Time: utils.AddMonths(monthStart.Time, 1)}

	var monthBills []models.Bill
	database.DB.
		Where("user_id = ? AND is_paid = ? AND due_date >= ? AND due_date < ?",
			userID, false, monthStart, nextMonthStart).
		Find(&monthBills)

	totalMonth := decimal.Zero
	for _, b := range monthBills {
		totalMonth = totalMonth.Add(b.Amount)
	}

	next7 := models.DateOnly{Time: today.AddDate(0, 0, 7)}
	var upcoming []models.Bill
	database.DB.
		Where("user_id = ? AND is_paid = ? AND due_date >= ? AND due_date <= ?",
			userID, false, today, next7).
		Order("due_date asc").
		Find(&upcoming)

	upcomingList := make([]gin.H, 0, len(upcoming))
	for _, b := range upcoming {
		upcomingList = append(upcomingList, gin.H{
			"id":       b.ID,
			"title":    b.Title,
			"amount":   b.Amount,
			"due_date": b.DueDate.String(),
			"type":     b.Type,
			"is_paid":  b.IsPaid,
		})
	}

	var overdueCount int64
	database.DB.Model(&models.Bill{}).
		Where("user_id = ? AND is_paid = ? AND due_date < ?", userID, false, today).
		Count(&overdueCount)

	return gin.H{
		"total_month_unpaid":   totalMonth,
		"upcoming_next_7_days": upcomingList,
		"overdue_count":        overdueCount,
	}
}
