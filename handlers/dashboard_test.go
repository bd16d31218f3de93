package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"smartdues/models"
)

func TestDashboardTotalCountsCurrentMonthOnly(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "dash@example.com")
	today := models.NewDate(2025, time.June, 15)

	// due this month, unpaid: counts toward the total
	createTestBill(t, user.ID, models.Bill{
		Title: "Power", Amount: decimal.NewFromInt(50),
		DueDate: models.NewDate(2025, time.June, 20),
	})
	// due next month, unpaid: excluded from the total
	createTestBill(t, user.ID, models.Bill{
		Title: "Water", Amount: decimal.NewFromInt(30),
		DueDate: models.NewDate(2025, time.July, 5),
	})
	// overdue from last month, unpaid: overdue only
	createTestBill(t, user.ID, models.Bill{
		Title: "Old rent", Amount: decimal.NewFromInt(25),
		DueDate: models.NewDate(2025, time.May, 20),
	})
	// paid this month: excluded everywhere
	createTestBill(t, user.ID, models.Bill{
		Title: "Settled", Amount: decimal.NewFromInt(40),
		DueDate: models.NewDate(2025, time.June, 2), IsPaid: true,
	})

	data := buildDashboard(user.ID, today)

	total := data["total_month_unpaid"].(decimal.Decimal)
	if !total.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total_month_unpaid = %s, want 50", total)
	}
	if overdue := data["overdue_count"].(int64); overdue != 1 {
		t.Errorf("overdue_count = %d, want 1", overdue)
	}

	upcoming := data["upcoming_next_7_days"].([]gin.H)
	if len(upcoming) != 1 {
		t.Fatalf("upcoming = %d bills, want 1", len(upcoming))
	}
	if upcoming[0]["title"] != "Power" || upcoming[0]["due_date"] != "2025-06-20" {
		t.Errorf("unexpected upcoming entry: %v", upcoming[0])
	}
}

func TestDashboardOverdueExcludesPaidBills(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "overdue@example.com")
	today := models.NewDate(2025, time.June, 15)

	createTestBill(t, user.ID, models.Bill{
		Title: "Ancient but settled", Amount: decimal.NewFromInt(99),
		DueDate: models.NewDate(2024, time.January, 1), IsPaid: true,
	})

	data := buildDashboard(user.ID, today)
	if overdue := data["overdue_count"].(int64); overdue != 0 {
		t.Errorf("overdue_count = %d, want 0", overdue)
	}
	if total := data["total_month_unpaid"].(decimal.Decimal); !total.IsZero() {
		t.Errorf("total_month_unpaid = %s, want 0", total)
	}
}

func TestDashboardDecemberRollsIntoJanuary(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "december@example.com")
	today := models.NewDate(2025, time.December, 10)

	createTestBill(t, user.ID, models.Bill{
		Title: "Year-end", Amount: decimal.NewFromInt(100),
		DueDate: models.NewDate(2025, time.December, 31),
	})
	createTestBill(t, user.ID, models.Bill{
		Title: "New year", Amount: decimal.NewFromInt(200),
		DueDate: models.NewDate(2026, time.January, 2),
	})

	data := buildDashboard(user.ID, today)
	total := data["total_month_unpaid"].(decimal.Decimal)
	if !total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total_month_unpaid = %s, want 100 (January bill belongs to next month)", total)
	}
}

func TestDashboardUpcomingOrderedAndBounded(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "upcoming@example.com")
	today := models.NewDate(2025, time.June, 15)

	createTestBill(t, user.ID, models.Bill{
		Title: "Day seven", Amount: decimal.NewFromInt(1),
		DueDate: models.NewDate(2025, time.June, 22), // inclusive boundary
	})
	createTestBill(t, user.ID, models.Bill{
		Title: "Tomorrow", Amount: decimal.NewFromInt(1),
		DueDate: models.NewDate(2025, time.June, 16),
	})
	createTestBill(t, user.ID, models.Bill{
		Title: "Day eight", Amount: decimal.NewFromInt(1),
		DueDate: models.NewDate(2025, time.June, 23), // outside the window
	})

	data := buildDashboard(user.ID, today)
	upcoming := data["upcoming_next_7_days"].([]gin.H)
	if len(upcoming) != 2 {
		t.Fatalf("upcoming = %d bills, want 2", len(upcoming))
	}
	if upcoming[0]["title"] != "Tomorrow" || upcoming[1]["title"] != "Day seven" {
		t.Errorf("upcoming not ordered by due date: %v", upcoming)
	}
}
