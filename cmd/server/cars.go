package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"carrental/pkg/booking"
	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func carView(car *models.Car) gin.H {
	return gin.H{
		"carUid":         car.CarUid,
		"make":           car.Make,
		"model":          car.Model,
		"year":           car.Year,
		"color":          car.Color,
		"transmission":   car.Transmission,
		"driveType":      car.DriveType,
		"fuelEfficiency": car.FuelEfficiency,
		"pricePerDay":    car.PricePerDay.StringFixed(2),
		"imageUrl":       car.ImageUrl,
		"isAvailable":    car.IsAvailable,
	}
}

func createCar(c *gin.Context) {
	var request struct {
		Make           string                  `json:"make" binding:"required"`
		Model          string                  `json:"model" binding:"required"`
		Year           int                     `json:"year" binding:"required"`
		Color          string                  `json:"color"`
		Transmission   models.TransmissionType `json:"transmission" binding:"required"`
		DriveType      models.DriveType        `json:"driveType" binding:"required"`
		FuelEfficiency float64                 `json:"fuelEfficiency"`
		PricePerDay    decimal.Decimal         `json:"pricePerDay"`
		ImageUrl       string                  `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if !models.ValidTransmission(request.Transmission) {
		respondError(c, http.StatusBadRequest, "Invalid transmission type")
		return
	}
	if !models.ValidDriveType(request.DriveType) {
		respondError(c, http.StatusBadRequest, "Invalid drive type")
		return
	}
	if !request.PricePerDay.IsPositive() {
		respondError(c, http.StatusBadRequest, "pricePerDay must be positive")
		return
	}

	car := models.Car{
		CarUid:         uuid.New().String(),
		Make:           request.Make,
		Model:          request.Model,
		Year:           request.Year,
		Color:          request.Color,
		Transmission:   request.Transmission,
		DriveType:      request.DriveType,
		FuelEfficiency: request.FuelEfficiency,
		PricePerDay:    request.PricePerDay,
		ImageUrl:       request.ImageUrl,
		IsAvailable:    true,
	}
	if err := db.Create(&car).Error; err != nil {
		log.Printf("Failed to create car: %v", err)
		respondError(c, http.StatusInternalServerError, "Error creating car")
		return
	}

	respondOK(c, http.StatusCreated, "Car created", carView(&car))
}

func listCars(c *gin.Context) {
	filter := booking.ListFilter{
		Make:  c.Query("make"),
		Model: c.Query("model"),
	}

	if transmission := c.Query("transmission"); transmission != "" {
		if !models.ValidTransmission(models.TransmissionType(transmission)) {
			respondError(c, http.StatusBadRequest, "Invalid transmission type")
			return
		}
		filter.Transmission = models.TransmissionType(transmission)
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		filter.Year = year
	}
	if minStr := c.Query("minPrice"); minStr != "" {
		minPrice, err := decimal.NewFromString(minStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		filter.MinPrice = &minPrice
	}
	if maxStr := c.Query("maxPrice"); maxStr != "" {
		maxPrice, err := decimal.NewFromString(maxStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = &maxPrice
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || size < 1 || size > 100 {
		size = 12
	}
	filter.Page = page
	filter.PageSize = size

	cars, total, err := engine.ListAvailableCars(filter)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	items := make([]gin.H, len(cars))
	for i := range cars {
		items[i] = carView(&cars[i])
	}
	respondOK(c, http.StatusOK, "Available cars", gin.H{
		"page":          page,
		"pageSize":      size,
		"totalElements": total,
		"items":         items,
	})
}

func getCar(c *gin.Context) {
	carUid := c.Param("carUid")

	var car models.Car
	if err := db.Where("car_uid = ?", carUid).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Car not found")
			return
		}
		log.Printf("Failed to load car: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	// Upcoming reservations let the client grey out taken date ranges.
	var upcoming []models.Reservation
	err := db.Where("car_id = ? AND end_date >= ?", car.ID, time.Now()).
		Order("start_date").
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Failed to load reservations for car %s: %v", carUid, err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	reservations := make([]gin.H, len(upcoming))
	for i, reservation := range upcoming {
		reservations[i] = gin.H{
			"startDate": reservation.StartDate.Format(booking.DateFormat),
			"endDate":   reservation.EndDate.Format(booking.DateFormat),
			"status":    reservation.Status,
		}
	}

	respondOK(c, http.StatusOK, "Car details", gin.H{
		"car":          carView(&car),
		"reservations": reservations,
	})
}

func carAvailability(c *gin.Context) {
	carUid := c.Param("carUid")

	start, err := time.Parse(booking.DateFormat, c.Query("startDate"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(booking.DateFormat, c.Query("endDate"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
		return
	}

	err = engine.CanBook(carUid, start, end)
	if err == nil {
		respondOK(c, http.StatusOK, "Car is available", gin.H{"available": true})
		return
	}
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		respondOK(c, http.StatusOK, conflictErr.Error(), gin.H{"available": false})
		return
	}
	respondEngineError(c, err)
}
