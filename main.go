package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartdues/database"
	"smartdues/handlers"
	"smartdues/logging"
	"smartdues/middleware"
	"smartdues/notify"
	"smartdues/scheduler"
)

func main() {
	// .env is for local development; in production the vars come from the
	// process environment.
	_ = godotenv.Load()
	logging.Setup()

	database.ConnectDatabase()

	sched := scheduler.New(database.DB, notify.NewDispatcher(), time.Minute)
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Public routes
	r.POST("/auth/signup", handlers.Signup)
	r.POST("/auth/login", handlers.Login)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	api := r.Group("/")
	api.Use(middleware.JwtAuthMiddleware())
	{
		api.POST("/bills", handlers.CreateBill)
		api.GET("/bills", handlers.GetBills)
		api.GET("/bills/:id", handlers.GetBill)
		api.PUT("/bills/:id", handlers.UpdateBill)
		api.DELETE("/bills/:id", handlers.DeleteBill)
		api.POST("/bills/:id/mark_paid", handlers.MarkBillPaid)

		api.GET("/dashboard", handlers.GetDashboard)
		api.GET("/dashboard/insight", handlers.GetMonthlyInsight)

		api.POST("/payments", handlers.CreatePayment)
		api.GET("/payments", handlers.GetPayments)
		api.GET("/payments/export", handlers.ExportPaymentsCSV)
		api.GET("/payments/export/xlsx", handlers.ExportPaymentsExcel)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
