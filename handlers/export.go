package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"smartdues/database"
	"smartdues/models"
)

// monthWindow resolves ?month=YYYY-MM to [start, next month start).
func monthWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 1, 0), true
}

func paymentsInWindow(userID uint, start, end time.Time) []models.Payment {
	var payments []models.Payment
	database.DB.
		Where("user_id = ? AND paid_on >= ? AND paid_on < ?", userID, start, end).
		Order("paid_on asc").
		Find(&payments)
	return payments
}

// GET /payments/export?month=2025-06
func ExportPaymentsCSV(c *gin.Context) {
	userID := getUserID(c)

	start, end, ok := monthWindow(c)
	if !ok {
		return
	}
	payments := paymentsInWindow(userID, start, end)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payments_%s.csv", start.Format("2006-01")))

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"id", "bill_id", "amount", "method", "paid_on"})
	for _, p := range payments {
		billID := ""
		if p.BillID != nil {
			billID = strconv.FormatUint(uint64(*p.BillID), 10)
		}
		w.Write([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			billID,
			p.Amount.StringFixed(2),
			p.Method,
			p.PaidOn.Format(time.RFC3339),
		})
	}
	w.Flush()
}

// GET /payments/export/xlsx?month=2025-06
func ExportPaymentsExcel(c *gin.Context) {
	userID := getUserID(c)

	start, end, ok := monthWindow(c)
	if !ok {
		return
	}
	payments := paymentsInWindow(userID, start, end)

	f := excelize.NewFile()
	sheetName := "Payments"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "Bill ID", "Amount", "Method", "Paid On", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "F1", styleHeader)

	row := 2
	for i, p := range payments {
		billID := ""
		if p.BillID != nil {
			billID = strconv.FormatUint(uint64(*p.BillID), 10)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), billID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.PaidOn.Format("02-01-2006 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Notes)
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 30)

	fileName := fmt.Sprintf("payments_%s.xlsx", start.Format("2006-01"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
	}
}
