package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"smartdues/database"
	"smartdues/models"
)

// setupTestDB points the global handle at a fresh in-memory database.
// Max one open connection, otherwise each pooled conn gets its own memory db.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Bill{}, &models.Payment{}, &models.ReminderLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "not-a-real-hash"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// authedRouter skips the JWT middleware and injects the user id directly.
func authedRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })

	r.POST("/bills", CreateBill)
	r.GET("/bills", GetBills)
	r.GET("/bills/:id", GetBill)
	r.PUT("/bills/:id", UpdateBill)
	r.DELETE("/bills/:id", DeleteBill)
	r.POST("/bills/:id/mark_paid", MarkBillPaid)
	r.GET("/dashboard", GetDashboard)
	r.POST("/payments", CreatePayment)
	r.GET("/payments", GetPayments)
	r.GET("/payments/export", ExportPaymentsCSV)
	r.GET("/payments/export/xlsx", ExportPaymentsExcel)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
