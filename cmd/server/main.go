package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"carrental/pkg/auth"
	"carrental/pkg/booking"
	"carrental/pkg/database"
	"carrental/pkg/jobs"
	"carrental/pkg/models"
	"carrental/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var (
	db        *gorm.DB
	engine    *booking.Engine
	fileStore *storage.FileStore
	jwtSecret string
)

const tokenTTL = 24 * time.Hour

func main() {
	log.Println("Starting car rental service...")
	godotenv.Load()

	db = database.Init()
	engine = booking.NewEngine(db)
	jwtSecret = getEnv("JWT_SECRET", "dev-secret-change-me")
	fileStore = storage.NewFileStore(getEnv("UPLOAD_DIR", "public/cars"), "/cars")

	seedAdminUser()

	reconciler := jobs.NewReconciler(db, engine)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 15m", reconciler.Run); err != nil {
		log.Fatalf("Failed to schedule reconciliation job: %v", err)
	}
	scheduler.Start()

	server := newRouter()

	port := getEnv("PORT", "8080")
	log.Printf("Car rental service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newRouter() *gin.Engine {
	server := gin.Default()
	server.Static("/cars", fileStore.Dir())

	server.POST("/api/auth/register", register)
	server.POST("/api/auth/login", login)
	server.POST("/api/upload", uploadImage)
	server.GET("/manage/health", healthCheck)

	authed := server.Group("/api", auth.RequireAuth(jwtSecret))
	authed.GET("/cars", listCars)
	authed.GET("/cars/:carUid", getCar)
	authed.GET("/cars/:carUid/availability", carAvailability)
	authed.POST("/reservations", createReservation)
	authed.GET("/reservations", myReservations)

	admin := authed.Group("", auth.RequireRole(models.RoleAdmin))
	admin.POST("/cars", createCar)
	admin.GET("/admin/reservations", adminListReservations)
	admin.PATCH("/admin/reservations/:reservationUid", updateReservationStatus)
	admin.GET("/admin/users", adminListUsers)
	admin.PATCH("/admin/users/:userUid", updateUserRole)
	admin.GET("/admin/stats", adminStats)

	return server
}

// seedAdminUser makes sure at least one ADMIN account exists so the console
// is reachable on a fresh database.
func seedAdminUser() {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		log.Fatalf("Failed to check for admin user: %v", err)
	}
	if count > 0 {
		return
	}

	email := getEnv("ADMIN_EMAIL", "admin@carrental.local")
	hash, err := auth.HashPassword(getEnv("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := models.User{
		UserUid:      uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Printf("Seeded admin user %s", email)
}

func healthCheck(c *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
