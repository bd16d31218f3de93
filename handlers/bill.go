package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"smartdues/database"
	"smartdues/models"
	"smartdues/utils"
)

// Helper: user id resolved by the auth middleware.
func getUserID(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}

type BillInput struct {
	Title          string          `json:"title" binding:"required"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	DueDate        models.DateOnly `json:"due_date" binding:"required"`
	RepeatInterval string          `json:"repeat_interval"`
	ReminderDays   string          `json:"reminder_days"`
	Notes          string          `json:"notes"`
}

// BillUpdateInput merges only the fields the client actually sent.
type BillUpdateInput struct {
	Title          *string          `json:"title"`
	Type           *string          `json:"type"`
	Amount         *decimal.Decimal `json:"amount"`
	DueDate        *models.DateOnly `json:"due_date"`
	RepeatInterval *string          `json:"repeat_interval"`
	ReminderDays   *string          `json:"reminder_days"`
	Notes          *string          `json:"notes"`
	IsPaid         *bool            `json:"is_paid"`
}

func CreateBill(c *gin.Context) {
	userID := getUserID(c)

	var input BillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = "emi"
	}

	bill := models.Bill{
		UserID:         userID,
		Title:          input.Title,
		Type:           input.Type,
		Amount:         input.Amount,
		DueDate:        input.DueDate,
		RepeatInterval: input.RepeatInterval,
		ReminderDays:   input.ReminderDays,
		Notes:          input.Notes,
		IsPaid:         false,
	}
	if err := database.DB.Create(&bill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bill"})
		return
	}

	c.JSON(http.StatusOK, bill)
}

func GetBills(c *gin.Context) {
	userID := getUserID(c)
	var bills []models.Bill

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	query := database.DB.Model(&models.Bill{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	query.Order("due_date asc").Limit(limit).Offset(offset).Find(&bills)

	c.JSON(http.StatusOK, gin.H{
		"data": bills,
		"meta": gin.H{
			"current_page": page,
			"limit":        limit,
			"total_data":   total,
			"total_pages":  math.Ceil(float64(total) / float64(limit)),
		},
	})
}

// findOwnedBill treats a bill owned by another user as not-found so the
// API never leaks whether the id exists.
func findOwnedBill(c *gin.Context, userID uint) (models.Bill, bool) {
	var bill models.Bill
	if err := database.DB.First(&bill, c.Param("id")).Error; err != nil || bill.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return models.Bill{}, false
	}
	return bill, true
}

func GetBill(c *gin.Context) {
	bill, ok := findOwnedBill(c, getUserID(c))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bill)
}

func UpdateBill(c *gin.Context) {
	bill, ok := findOwnedBill(c, getUserID(c))
	if !ok {
		return
	}

	var input BillUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		bill.Title = *input.Title
	}
	if input.Type != nil {
		bill.Type = *input.Type
	}
	if input.Amount != nil {
		bill.Amount = *input.Amount
	}
	if input.DueDate != nil {
		bill.DueDate = *input.DueDate
	}
	if input.RepeatInterval != nil {
		bill.RepeatInterval = *input.RepeatInterval
	}
	if input.ReminderDays != nil {
		bill.ReminderDays = *input.ReminderDays
	}
	if input.Notes != nil {
		bill.Notes = *input.Notes
	}
	if input.IsPaid != nil {
		bill.IsPaid = *input.IsPaid
	}

	if err := database.DB.Save(&bill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill"})
		return
	}

	c.JSON(http.StatusOK, bill)
}

func DeleteBill(c *gin.Context) {
	bill, ok := findOwnedBill(c, getUserID(c))
	if !ok {
		return
	}

	// Payments keep their row; the FK nulls their bill reference.
	if err := database.DB.Delete(&bill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "deleted"})
}

// MarkBillPaid settles a bill. A monthly bill also gets its next-cycle
// successor; both the successor and the payment record are best-effort and
// never fail the settle itself. Re-marking an already paid bill is a no-op.
func MarkBillPaid(c *gin.Context) {
	bill, ok := findOwnedBill(c, getUserID(c))
	if !ok {
		return
	}

	if bill.IsPaid {
		c.JSON(http.StatusOK, bill)
		return
	}

	bill.IsPaid = true
	if err := database.DB.Save(&bill).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill"})
		return
	}

	if strings.EqualFold(bill.RepeatInterval, "monthly") {
		next := models.Bill{
			UserID:         bill.UserID,
			Title:          bill.Title,
			Type:           bill.Type,
			Amount:         bill.Amount,
			DueDate:        models.DateOnly{Time: utils.AddMonths(bill.DueDate.Time, 1)},
			RepeatInterval: bill.RepeatInterval,
			ReminderDays:   bill.ReminderDays,
			Notes:          bill.Notes,
			IsPaid:         false,
		}
		if err := database.DB.Create(&next).Error; err != nil {
			slog.Warn("failed to create recurring successor bill", "bill_id", bill.ID, "error", err)
		}
	}

	payment := models.Payment{
		UserID: bill.UserID,
		BillID: &bill.ID,
		Amount: bill.Amount,
		Method: "manual",
		Notes:  "Marked paid via API",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		slog.Warn("failed to record payment", "bill_id", bill.ID, "error", err)
	}

	c.JSON(http.StatusOK, bill)
}
