package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleUser
}

type TransmissionType string

const (
	TransmissionAutomatic TransmissionType = "AUTOMATIC"
	TransmissionManual    TransmissionType = "MANUAL"
)

func ValidTransmission(t TransmissionType) bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

type DriveType string

const (
	DriveFWD    DriveType = "FWD"
	DriveRWD    DriveType = "RWD"
	DriveAWD    DriveType = "AWD"
	DriveFourWD DriveType = "4WD"
)

func ValidDriveType(d DriveType) bool {
	return d == DriveFWD || d == DriveRWD || d == DriveAWD || d == DriveFourWD
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	UserUid      string `gorm:"type:uuid;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"size:80;not null"`
	Role         Role   `gorm:"size:20;not null;default:'USER'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Car struct {
	ID             uint             `gorm:"primaryKey"`
	CarUid         string           `gorm:"type:uuid;uniqueIndex;not null"`
	Make           string           `gorm:"size:80;not null"`
	Model          string           `gorm:"size:80;not null"`
	Year           int              `gorm:"not null"`
	Color          string           `gorm:"size:40"`
	Transmission   TransmissionType `gorm:"size:20;not null"`
	DriveType      DriveType        `gorm:"size:10;not null"`
	FuelEfficiency float64
	PricePerDay    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageUrl       string
	IsAvailable    bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Reservation struct {
	ID             uint              `gorm:"primaryKey"`
	ReservationUid string            `gorm:"type:uuid;uniqueIndex;not null"`
	CarID          uint              `gorm:"not null;index"`
	UserID         uint              `gorm:"not null;index"`
	StartDate      time.Time         `gorm:"not null"`
	EndDate        time.Time         `gorm:"not null"`
	TotalPrice     decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Status         ReservationStatus `gorm:"size:20;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Car  Car  `gorm:"foreignKey:CarID"`
	User User `gorm:"foreignKey:UserID"`
}
