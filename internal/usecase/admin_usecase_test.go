package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking-bot/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestAdminUsecase_RejectsMalformedDate(t *testing.T) {
	uc := NewAdminUsecase(testDB(t), testLogger(), repository.NewAppointmentRepository(), 5*time.Second)

	for _, date := range []string{"", "02-03-2024", "2024/03/02", "1402/12/12"} {
		_, err := uc.ListAppointmentsForDate(context.Background(), date)
		require.ErrorIs(t, err, ErrInvalidDate, date)
	}
}

func TestAdminUsecase_ListsOnlyRequestedDate(t *testing.T) {
	db := testDB(t)
	appointmentRepo := repository.NewAppointmentRepository()
	bookings := NewBookingUsecase(db, testLogger(), appointmentRepo, 5*time.Second)
	uc := NewAdminUsecase(db, testLogger(), appointmentRepo, 5*time.Second)
	ctx := context.Background()

	_, err := bookings.Confirm(ctx, 1001, "کاربر اول", completeSession())
	require.NoError(t, err)

	other := completeSession()
	other.DateGregorian = strPtr("2024-03-03")
	other.DateJalali = strPtr("1402/12/13 - یکشنبه")
	_, err = bookings.Confirm(ctx, 2002, "کاربر دوم", other)
	require.NoError(t, err)

	result, err := uc.ListAppointmentsForDate(ctx, "2024-03-02")
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "2024-03-02", result.Appointments[0].DateGregorian)

	empty, err := uc.ListAppointmentsForDate(ctx, "2024-03-09")
	require.NoError(t, err)
	require.Zero(t, empty.Total)
}
