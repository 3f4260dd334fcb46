package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func adminListReservations(c *gin.Context) {
	query := db.Preload("Car").Preload("User").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.ReservationStatus(status)) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		log.Printf("Failed to list reservations: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]gin.H, len(reservations))
	for i := range reservations {
		item := reservationView(&reservations[i])
		item["car"] = gin.H{
			"carUid": reservations[i].Car.CarUid,
			"make":   reservations[i].Car.Make,
			"model":  reservations[i].Car.Model,
		}
		item["user"] = gin.H{
			"name":  reservations[i].User.Name,
			"email": reservations[i].User.Email,
		}
		items[i] = item
	}
	respondOK(c, http.StatusOK, "Reservations", items)
}

func updateReservationStatus(c *gin.Context) {
	reservationUid := c.Param("reservationUid")

	var request struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidStatus(request.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	reservation, err := engine.Transition(reservationUid, request.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	respondOK(c, http.StatusOK,
		fmt.Sprintf("Reservation status updated to %s", request.Status),
		reservationView(reservation))
}

func userView(user *models.User) gin.H {
	return gin.H{
		"userUid": user.UserUid,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
	}
}

func adminListUsers(c *gin.Context) {
	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]gin.H, len(users))
	for i := range users {
		items[i] = userView(&users[i])
	}
	respondOK(c, http.StatusOK, "Users", items)
}

func updateUserRole(c *gin.Context) {
	userUid := c.Param("userUid")

	var request struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidRole(request.Role) {
		respondError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	var user models.User
	if err := db.Where("user_uid = ?", userUid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Failed to load user: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user.Role = request.Role
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Failed to update user role: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	respondOK(c, http.StatusOK, "User role updated", userView(&user))
}

func adminStats(c *gin.Context) {
	var totalUsers, totalCars, pendingReservations int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Failed to count users: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if err := db.Model(&models.Car{}).Count(&totalCars).Error; err != nil {
		log.Printf("Failed to count cars: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	err := db.Model(&models.Reservation{}).
		Where("status = ?", models.StatusPending).
		Count(&pendingReservations).Error
	if err != nil {
		log.Printf("Failed to count pending reservations: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var totalRevenue decimal.Decimal
	err = db.Model(&models.Reservation{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		log.Printf("Failed to sum revenue: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var recent []models.Reservation
	err = db.Preload("Car").Preload("User").
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		log.Printf("Failed to load recent reservations: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	activities := make([]gin.H, len(recent))
	for i := range recent {
		activities[i] = gin.H{
			"reservationUid": recent[i].ReservationUid,
			"status":         recent[i].Status,
			"userName":       recent[i].User.Name,
			"carMake":        recent[i].Car.Make,
			"carModel":       recent[i].Car.Model,
			"totalPrice":     recent[i].TotalPrice.StringFixed(2),
		}
	}

	respondOK(c, http.StatusOK, "Admin statistics", gin.H{
		"totalUsers":          totalUsers,
		"totalCars":           totalCars,
		"pendingReservations": pendingReservations,
		"totalRevenue":        totalRevenue.StringFixed(2),
		"recentActivities":    activities,
	})
}
