package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-bot/internal/converter"
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

type AdminUsecase interface {
	ListAppointmentsForDate(ctx context.Context, dateGregorian string) (*dto.AppointmentListResponse, error)
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	storeTimeout    time.Duration
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	storeTimeout time.Duration,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		storeTimeout:    storeTimeout,
	}
}

// ListAppointmentsForDate returns the appointments booked for one canonical
// date, in creation order. An empty day yields an empty list, not an error.
func (u *adminUsecase) ListAppointmentsForDate(ctx context.Context, dateGregorian string) (*dto.AppointmentListResponse, error) {
	if _, err := time.Parse("2006-01-02", dateGregorian); err != nil {
		return nil, ErrInvalidDate
	}

	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	appointments, err := u.appointmentRepo.FindByDate(u.db.WithContext(ctx), dateGregorian)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", dateGregorian, err)
		return nil, classifyStoreErr(err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
