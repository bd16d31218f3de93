package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"smartdues/database"
	"smartdues/models"
)

type PaymentInput struct {
	BillID *uint           `json:"bill_id"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
	Notes  string          `json:"notes"`
}

func CreatePayment(c *gin.Context) {
	userID := getUserID(c)

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A bill reference must point at one of the caller's own bills.
	if input.BillID != nil {
		var bill models.Bill
		if err := database.DB.First(&bill, *input.BillID).Error; err != nil || bill.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
	}

	payment := models.Payment{
		UserID: userID,
		BillID: input.BillID,
		Amount: input.Amount,
		Method: input.Method,
		Notes:  input.Notes,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

func GetPayments(c *gin.Context) {
	userID := getUserID(c)
	var payments []models.Payment

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

	query := database.DB.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	query.Order("paid_on desc").Limit(limit).Offset(offset).Find(&payments)

	c.JSON(http.StatusOK, gin.H{
		"data": payments,
		"meta": gin.H{
			"current_page": page,
			"limit":        limit,
			"total_data":   total,
			"total_pages":  math.Ceil(float64(total) / float64(limit)),
		},
	})
}
