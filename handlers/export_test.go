package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"smartdues/database"
	"smartdues/models"
)

func createTestPayment(t *testing.T, userID uint, amount string, paidOn time.Time) models.Payment {
	t.Helper()
	p := models.Payment{
		UserID: userID,
		Amount: decimal.RequireFromString(amount),
		Method: "manual",
		PaidOn: paidOn,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		t.Fatalf("create test payment: %v", err)
	}
	return p
}

func TestExportPaymentsCSVFiltersExactMonth(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "csv@example.com")
	r := authedRouter(user.ID)

	createTestPayment(t, user.ID, "10.00", time.Date(2025, time.May, 31, 23, 59, 0, 0, time.UTC))
	createTestPayment(t, user.ID, "75.50", time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	createTestPayment(t, user.ID, "20.00", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))

	w := doRequest(r, http.MethodGet, "/payments/export?month=2025-06", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition = %q, want attachment", cd)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv rows = %d, want header + 1 data row", len(records))
	}
	header := records[0]
	want := []string{"id", "bill_id", "amount", "method", "paid_on"}
	for i, col := range want {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}
	row := records[1]
	if row[2] != "75.50" {
		t.Errorf("amount column = %q, want 75.50", row[2])
	}
	if row[1] != "" {
		t.Errorf("bill_id column = %q, want empty for unlinked payment", row[1])
	}
}

func TestExportPaymentsCSVRejectsBadMonth(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "badmonth@example.com")
	r := authedRouter(user.ID)

	for _, month := range []string{"", "junk", "2025-13", "06-2025"} {
		w := doRequest(r, http.MethodGet, "/payments/export?month="+month, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("month=%q: status = %d, want 400", month, w.Code)
		}
	}
}

func TestExportPaymentsExcelReturnsAttachment(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "xlsx@example.com")
	r := authedRouter(user.ID)

	createTestPayment(t, user.ID, "42.00", time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC))

	w := doRequest(r, http.MethodGet, "/payments/export/xlsx?month=2025-06", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "payments_2025-06.xlsx") {
		t.Errorf("content disposition = %q, want xlsx filename", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("empty spreadsheet body")
	}
}
