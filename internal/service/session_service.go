package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SessionState is the dialogue position of a booking session.
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateDoctorChosen  SessionState = "doctor_chosen"
	StateServiceChosen SessionState = "service_chosen"
	StateDateChosen    SessionState = "date_chosen"
	StateTimeChosen    SessionState = "time_chosen"
	StatePaymentChosen SessionState = "payment_chosen"
	StateCompleted     SessionState = "completed"
	StateAdminView     SessionState = "admin_view"
)

// Booking step names used in "please complete step X" messages.
const (
	StepDoctor  = "doctor"
	StepService = "service"
	StepDate    = "date"
	StepTime    = "time"
)

// BookingSession is the fixed-shape per-user selection record. Unset
// fields stay nil so out-of-order transitions are detectable; they are
// never defaulted. Fields survive back-to-main navigation on purpose: a
// user can go back and change a single selection while the rest sticks.
type BookingSession struct {
	State         SessionState `json:"state"`
	DoctorLabel   *string      `json:"doctor_label,omitempty"`
	ServiceName   *string      `json:"service_name,omitempty"`
	DateGregorian *string      `json:"date_gregorian,omitempty"`
	DateJalali    *string      `json:"date_jalali,omitempty"`
	TimeSlot      *string      `json:"time_slot,omitempty"`
}

// NewBookingSession returns an empty session in the Idle state.
func NewBookingSession() *BookingSession {
	return &BookingSession{State: StateIdle}
}

// MissingSteps lists the selections still required before the session can
// be confirmed, in dialogue order.
func (s *BookingSession) MissingSteps() []string {
	var missing []string
	if s.DoctorLabel == nil {
		missing = append(missing, StepDoctor)
	}
	if s.ServiceName == nil {
		missing = append(missing, StepService)
	}
	if s.DateGregorian == nil || s.DateJalali == nil {
		missing = append(missing, StepDate)
	}
	if s.TimeSlot == nil {
		missing = append(missing, StepTime)
	}
	return missing
}

const sessionKeyPrefix = "session:booking:"

// SessionService stores booking sessions in Redis. Sessions are working
// memory, not durable state: every write refreshes the TTL and an expired
// or missing key simply yields a fresh Idle session.
type SessionService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSessionService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

// Get loads the user's session, creating an Idle one when none exists.
func (s *SessionService) Get(ctx context.Context, userID int64) (*BookingSession, error) {
	raw, err := s.redisClient.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewBookingSession(), nil
		}
		s.log.Warnf("Failed to load session for user %d: %+v", userID, err)
		return nil, fmt.Errorf("load session for user %d: %w", userID, err)
	}

	var session BookingSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// A corrupt session is dropped rather than wedging the dialogue.
		s.log.Warnf("Dropping corrupt session for user %d: %+v", userID, err)
		return NewBookingSession(), nil
	}
	return &session, nil
}

// Save persists the session and refreshes its TTL.
func (s *SessionService) Save(ctx context.Context, userID int64, session *BookingSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session for user %d: %w", userID, err)
	}

	if err := s.redisClient.Set(ctx, sessionKey(userID), raw, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to save session for user %d: %+v", userID, err)
		return fmt.Errorf("save session for user %d: %w", userID, err)
	}
	return nil
}

// Clear discards the session, used after an appointment completes.
func (s *SessionService) Clear(ctx context.Context, userID int64) error {
	if err := s.redisClient.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.log.Warnf("Failed to clear session for user %d: %+v", userID, err)
		return fmt.Errorf("clear session for user %d: %w", userID, err)
	}
	return nil
}

// TTL exposes the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
