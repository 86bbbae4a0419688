package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-booking-bot/internal/converter"
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/domain/entity"
	"clinic-booking-bot/internal/domain/repository"
	"clinic-booking-bot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when another appointment already holds the same
// doctor, date and time. Double bookings are rejected.
var ErrSlotTaken = errors.New("this time slot is already booked for the doctor")

// IncompleteSelectionError reports a confirm attempt with required booking
// steps still unset. No appointment is written in that case.
type IncompleteSelectionError struct {
	Missing []string
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("booking selection incomplete, missing: %s", strings.Join(e.Missing, ", "))
}

type BookingUsecase interface {
	Confirm(ctx context.Context, userID int64, fullName string, session *service.BookingSession) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	storeTimeout    time.Duration
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	storeTimeout time.Duration,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		storeTimeout:    storeTimeout,
	}
}

// Confirm turns a complete booking session into a durable appointment.
//
// Flow:
// 1. Require every booking step to be set (no partial rows, ever)
// 2. Reject a double booking of the same doctor/date/time
// 3. Insert the denormalized appointment snapshot
//
// The doctor and service strings are copied from the session as resolved
// at selection time; later catalog edits do not touch them.
func (u *bookingUsecase) Confirm(ctx context.Context, userID int64, fullName string, session *service.BookingSession) (*dto.AppointmentResponse, error) {
	if missing := session.MissingSteps(); len(missing) > 0 {
		return nil, &IncompleteSelectionError{Missing: missing}
	}

	ctx, cancel := withStoreTimeout(ctx, u.storeTimeout)
	defer cancel()

	existing, err := u.appointmentRepo.FindByDoctorSlot(
		u.db.WithContext(ctx),
		*session.DoctorLabel,
		*session.DateGregorian,
		*session.TimeSlot,
	)
	if err != nil {
		u.log.Warnf("Failed to check slot for user %d: %+v", userID, err)
		return nil, classifyStoreErr(err)
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		ID:            uuid.New(),
		UserID:        userID,
		FullName:      fullName,
		DoctorLabel:   *session.DoctorLabel,
		ServiceName:   *session.ServiceName,
		DateGregorian: *session.DateGregorian,
		DateJalali:    *session.DateJalali,
		TimeSlot:      *session.TimeSlot,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Errorf("Failed to create appointment for user %d: %+v", userID, err)
		return nil, classifyStoreErr(err)
	}

	u.log.Infof("Appointment created: id=%s, user=%d, doctor=%s, date=%s, time=%s",
		appointment.ID, userID, appointment.DoctorLabel, appointment.DateGregorian, appointment.TimeSlot)
	return converter.AppointmentToResponse(appointment), nil
}
