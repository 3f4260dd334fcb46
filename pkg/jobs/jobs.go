// Package jobs holds the scheduled maintenance sweeps: closing out
// confirmed reservations whose rental period ended and keeping the cached
// car availability flag in line with the reservations table.
package jobs

import (
	"fmt"
	"log"
	"time"

	"carrental/pkg/booking"
	"carrental/pkg/models"

	"gorm.io/gorm"
)

type Reconciler struct {
	db     *gorm.DB
	engine *booking.Engine
	now    func() time.Time
}

func NewReconciler(db *gorm.DB, engine *booking.Engine) *Reconciler {
	return &Reconciler{db: db, engine: engine, now: time.Now}
}

// Run executes both sweeps; errors are logged, not fatal, so one bad pass
// never stops the scheduler.
func (r *Reconciler) Run() {
	if err := r.CompleteFinishedReservations(); err != nil {
		log.Printf("Cron job: completing finished reservations failed: %v", err)
	}
	if err := r.ReconcileAvailability(); err != nil {
		log.Printf("Cron job: availability reconciliation failed: %v", err)
	}
}

// CompleteFinishedReservations moves CONFIRMED reservations whose end date
// has passed to COMPLETED through the regular state machine, so the car
// flag side effect applies transactionally.
func (r *Reconciler) CompleteFinishedReservations() error {
	var finished []models.Reservation
	err := r.db.
		Where("status = ? AND end_date <= ?", models.StatusConfirmed, r.now()).
		Find(&finished).Error
	if err != nil {
		return fmt.Errorf("failed to load finished reservations: %w", err)
	}
	if len(finished) == 0 {
		return nil
	}

	for _, reservation := range finished {
		if _, err := r.engine.Transition(reservation.ReservationUid, models.StatusCompleted); err != nil {
			log.Printf("Cron job: failed to complete reservation %s: %v", reservation.ReservationUid, err)
		}
	}
	log.Printf("Cron job: completed %d finished reservations", len(finished))
	return nil
}

// ReconcileAvailability restores the invariant that is_available mirrors
// the absence of a CONFIRMED reservation covering "now". Admin transitions
// keep the flag fresh, but this sweep repairs any drift.
func (r *Reconciler) ReconcileAvailability() error {
	now := r.now()

	blocked := r.db.Model(&models.Reservation{}).
		Select("car_id").
		Where("status = ? AND start_date <= ? AND end_date > ?", models.StatusConfirmed, now, now)
	res := r.db.Model(&models.Car{}).
		Where("is_available = ? AND id IN (?)", true, blocked).
		Update("is_available", false)
	if res.Error != nil {
		return fmt.Errorf("failed to mark busy cars: %w", res.Error)
	}
	marked := res.RowsAffected

	blocked = r.db.Model(&models.Reservation{}).
		Select("car_id").
		Where("status = ? AND start_date <= ? AND end_date > ?", models.StatusConfirmed, now, now)
	res = r.db.Model(&models.Car{}).
		Where("is_available = ? AND id NOT IN (?)", false, blocked).
		Update("is_available", true)
	if res.Error != nil {
		return fmt.Errorf("failed to release idle cars: %w", res.Error)
	}

	if marked > 0 || res.RowsAffected > 0 {
		log.Printf("Cron job: availability reconciled (%d marked busy, %d released)", marked, res.RowsAffected)
	}
	return nil
}
