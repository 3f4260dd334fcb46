// Package booking holds the availability and reservation lifecycle logic:
// conflict detection for new bookings, the pending-hold window, listing of
// bookable cars and the reservation status state machine.
package booking

import (
	"errors"
	"math"
	"strings"
	"time"

	"carrental/pkg/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DateFormat = "2006-01-02"

// HoldWindow is how long an unconfirmed PENDING reservation keeps blocking
// the car. After it lapses the row stays but no longer counts.
const HoldWindow = 30 * time.Minute

type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// blockingFor finds the first reservation that blocks [start, end) for the
// car: any CONFIRMED one, or a PENDING one still inside the hold window.
// Overlap is the full symmetric interval test.
func (e *Engine) blockingFor(tx *gorm.DB, carID uint, start, end, now time.Time) (*models.Reservation, error) {
	var existing models.Reservation
	err := tx.
		Where("car_id = ?", carID).
		Where("start_date < ? AND end_date > ?", end, start).
		Where("(status = ? OR (status = ? AND created_at > ?))",
			models.StatusConfirmed, models.StatusPending, now.Add(-HoldWindow)).
		Order("start_date").
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

// CanBook reports whether the car identified by carUid may be reserved for
// [start, end). It returns a ConflictError naming the blocking range, a
// ValidationError for a malformed interval, or nil when the car is free.
func (e *Engine) CanBook(carUid string, start, end time.Time) error {
	if !end.After(start) {
		return &ValidationError{Msg: "end date must be after start date"}
	}
	var car models.Car
	if err := e.db.Where("car_uid = ?", carUid).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarNotFound
		}
		return err
	}
	blocking, err := e.blockingFor(e.db, car.ID, start, end, e.now())
	if err != nil {
		return err
	}
	if blocking != nil {
		return &ConflictError{Start: blocking.StartDate, End: blocking.EndDate}
	}
	return nil
}

// Book creates a PENDING reservation for the user if the car is free for
// [start, end). The conflict check and the insert run in one transaction so
// concurrent requests cannot both slip past the check.
func (e *Engine) Book(userID uint, carUid string, start, end time.Time) (*models.Reservation, error) {
	if !end.After(start) {
		return nil, &ValidationError{Msg: "end date must be after start date"}
	}

	now := e.now()
	var reservation models.Reservation
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.Where("car_uid = ?", carUid).First(&car).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}

		blocking, err := e.blockingFor(tx, car.ID, start, end, now)
		if err != nil {
			return err
		}
		if blocking != nil {
			return &ConflictError{Start: blocking.StartDate, End: blocking.EndDate}
		}

		days := int64(math.Ceil(end.Sub(start).Hours() / 24))
		reservation = models.Reservation{
			ReservationUid: uuid.New().String(),
			CarID:          car.ID,
			UserID:         userID,
			StartDate:      start,
			EndDate:        end,
			TotalPrice:     car.PricePerDay.Mul(decimal.NewFromInt(days)),
			Status:         models.StatusPending,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListFilter narrows the available-car listing. Zero values mean "no filter";
// price bounds are pointers so zero prices stay expressible.
type ListFilter struct {
	Make         string
	Model        string
	Transmission models.TransmissionType
	Year         int
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Page         int
	PageSize     int
}

const defaultPageSize = 12

// ListAvailableCars returns the cars a user may currently book, newest
// first. A car is listable when its cached flag is set AND it has no
// CONFIRMED reservation AND no PENDING reservation inside the hold window.
// The hold check is derived from created_at on every read; nothing is
// mutated here.
func (e *Engine) ListAvailableCars(f ListFilter) ([]models.Car, int64, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 || size > 100 {
		size = defaultPageSize
	}

	blocked := e.db.Model(&models.Reservation{}).
		Select("car_id").
		Where("(status = ? OR (status = ? AND created_at > ?))",
			models.StatusConfirmed, models.StatusPending, e.now().Add(-HoldWindow))

	query := e.db.Model(&models.Car{}).
		Where("is_available = ?", true).
		Where("id NOT IN (?)", blocked)

	if f.Make != "" {
		query = query.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(f.Make)+"%")
	}
	if f.Model != "" {
		query = query.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(f.Model)+"%")
	}
	if f.Transmission != "" {
		query = query.Where("transmission = ?", f.Transmission)
	}
	if f.Year != 0 {
		query = query.Where("year = ?", f.Year)
	}
	if f.MinPrice != nil {
		query = query.Where("price_per_day >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price_per_day <= ?", *f.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []models.Car
	offset := (page - 1) * size
	err := query.Order("created_at DESC").Offset(offset).Limit(size).Find(&cars).Error
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// Transition moves a reservation to the next lifecycle status and updates
// the car's cached availability flag in the same transaction. Allowed moves:
// PENDING to CONFIRMED or CANCELLED, CONFIRMED to COMPLETED. CANCELLED and
// COMPLETED are terminal.
func (e *Engine) Transition(reservationUid string, next models.ReservationStatus) (*models.Reservation, error) {
	if !models.ValidStatus(next) {
		return nil, &ValidationError{Msg: "invalid status"}
	}

	var reservation models.Reservation
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_uid = ?", reservationUid).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if !allowedTransition(reservation.Status, next) {
			return &InvalidTransitionError{From: reservation.Status, To: next}
		}

		reservation.Status = next
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}

		available := next != models.StatusConfirmed
		return tx.Model(&models.Car{}).
			Where("id = ?", reservation.CarID).
			Update("is_available", available).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func allowedTransition(from, to models.ReservationStatus) bool {
	switch from {
	case models.StatusPending:
		return to == models.StatusConfirmed || to == models.StatusCancelled
	case models.StatusConfirmed:
		return to == models.StatusCompleted
	}
	return false
}
