package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testSessionService(t *testing.T) (*SessionService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewSessionService(client, log, 30*time.Minute), mr
}

func strPtr(s string) *string { return &s }

func TestSessionService_GetMissingYieldsIdle(t *testing.T) {
	svc, _ := testSessionService(t)

	session, err := svc.Get(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, StateIdle, session.State)
	require.Nil(t, session.DoctorLabel)
}

func TestSessionService_SaveAndGetRoundTrip(t *testing.T) {
	svc, _ := testSessionService(t)
	ctx := context.Background()

	session := NewBookingSession()
	session.State = StateDateChosen
	session.DoctorLabel = strPtr("دکتر احمدی — پوست")
	session.DateGregorian = strPtr("2024-03-02")
	session.DateJalali = strPtr("1402/12/12 - شنبه")

	require.NoError(t, svc.Save(ctx, 100, session))

	loaded, err := svc.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, StateDateChosen, loaded.State)
	require.Equal(t, "دکتر احمدی — پوست", *loaded.DoctorLabel)
	require.Equal(t, "2024-03-02", *loaded.DateGregorian)
	require.Nil(t, loaded.ServiceName)
	require.Nil(t, loaded.TimeSlot)
}

func TestSessionService_SaveRefreshesTTL(t *testing.T) {
	svc, mr := testSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, 100, NewBookingSession()))
	require.Equal(t, 30*time.Minute, mr.TTL("session:booking:100"))

	mr.FastForward(20 * time.Minute)
	require.NoError(t, svc.Save(ctx, 100, NewBookingSession()))
	require.Equal(t, 30*time.Minute, mr.TTL("session:booking:100"))
}

func TestSessionService_ExpiredSessionYieldsIdle(t *testing.T) {
	svc, mr := testSessionService(t)
	ctx := context.Background()

	session := NewBookingSession()
	session.State = StateTimeChosen
	session.TimeSlot = strPtr("10:00")
	require.NoError(t, svc.Save(ctx, 100, session))

	mr.FastForward(31 * time.Minute)

	loaded, err := svc.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, StateIdle, loaded.State)
	require.Nil(t, loaded.TimeSlot)
}

func TestSessionService_CorruptSessionDropped(t *testing.T) {
	svc, mr := testSessionService(t)

	require.NoError(t, mr.Set("session:booking:100", "{not json"))

	loaded, err := svc.Get(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, StateIdle, loaded.State)
}

func TestSessionService_Clear(t *testing.T) {
	svc, mr := testSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, 100, NewBookingSession()))
	require.NoError(t, svc.Clear(ctx, 100))
	require.False(t, mr.Exists("session:booking:100"))
}

func TestBookingSession_MissingSteps(t *testing.T) {
	session := NewBookingSession()
	require.Equal(t, []string{StepDoctor, StepService, StepDate, StepTime}, session.MissingSteps())

	session.DoctorLabel = strPtr("دکتر احمدی — پوست")
	session.DateGregorian = strPtr("2024-03-02")
	session.DateJalali = strPtr("1402/12/12 - شنبه")
	require.Equal(t, []string{StepService, StepTime}, session.MissingSteps())

	session.ServiceName = strPtr("فیشیال")
	session.TimeSlot = strPtr("10:00")
	require.Empty(t, session.MissingSteps())
}
