package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"smartdues/database"
	"smartdues/models"
	"smartdues/utils"
)

// GET /dashboard/insight
// Feeds the month's unpaid bills to Gemini for a short spending tip.
// Without GEMINI_API_KEY the endpoint is disabled, not broken.
func GetMonthlyInsight(c *gin.Context) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Insight is not configured"})
		return
	}

	userID := getUserID(c)
	today := models.Today()
	monthStart := models.NewDate(today.Year(), today.Month(), 1)
	nextMonthStart := models.DateOnly{Time: utils.AddMonths(monthStart.Time, 1)}

	var bills []models.Bill
	database.DB.
		Where("user_id = ? AND is_paid = ? AND due_date >= ? AND due_date < ?",
			userID, false, monthStart, nextMonthStart).
		Order("due_date asc").
		Find(&bills)

	if len(bills) == 0 {
		c.JSON(http.StatusOK, gin.H{"insight": "No unpaid bills this month. Nothing to worry about!"})
		return
	}

	var sb strings.Builder
	for _, b := range bills {
		fmt.Fprintf(&sb, "- %s (%s): %s due %s\n", b.Title, b.Type, b.Amount.StringFixed(2), b.DueDate)
	}

	ctx := c.Request.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize insight client"})
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-flash")
	prompt := fmt.Sprintf(
		"You are a personal finance assistant. These are the user's unpaid bills for %s:\n%s"+
			"Reply with one short paragraph of practical advice on handling them. Plain text only.",
		today.Format("January 2006"), sb.String())

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Insight generation failed"})
		return
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	if text.Len() == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Insight generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insight": strings.TrimSpace(text.String())})
}
