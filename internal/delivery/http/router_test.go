package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking-bot/config"
	"clinic-booking-bot/internal/delivery/dto"
	"clinic-booking-bot/internal/delivery/http/handler"
	"clinic-booking-bot/internal/delivery/http/middleware"
	"clinic-booking-bot/internal/domain/entity"
	"clinic-booking-bot/internal/repository"
	"clinic-booking-bot/internal/service"
	"clinic-booking-bot/internal/usecase"
	"clinic-booking-bot/pkg/jwt"
	"clinic-booking-bot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiFixture struct {
	router   *mux.Router
	bookings usecase.BookingUsecase
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Doctor{}, &entity.Service{}, &entity.Appointment{}))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute})
	customValidator := validator.NewValidator()

	storeTimeout := 5 * time.Second
	catalogUsecase := usecase.NewCatalogUsecase(db, log, repository.NewDoctorRepository(), repository.NewServiceRepository(), storeTimeout, true)
	bookingUsecase := usecase.NewBookingUsecase(db, log, repository.NewAppointmentRepository(), storeTimeout)
	adminUsecase := usecase.NewAdminUsecase(db, log, repository.NewAppointmentRepository(), storeTimeout)
	authUsecase := usecase.NewAuthUsecase(log, config.AdminConfig{Username: "admin", PasswordHash: string(hash)}, jwtService)

	webhookHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	router := NewRouter(
		handler.NewAuthHandler(authUsecase, customValidator),
		handler.NewCatalogHandler(catalogUsecase, customValidator),
		handler.NewAppointmentHandler(adminUsecase),
		"/webhook/telegram",
		webhookHandler,
		middleware.NewAuthMiddleware(jwtService),
		middleware.NewCORSMiddleware(),
	)

	return &apiFixture{router: router.Setup(), bookings: bookingUsecase}
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) login(t *testing.T) string {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestRouter_HealthCheck(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRouter_LoginRejectsBadCredentials(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginValidatesBody(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/admin/doctors", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/v1/admin/doctors", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CatalogCRUD(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t)

	rec := f.request(t, http.MethodPost, "/api/v1/admin/doctors", token, dto.CreateDoctorRequest{Name: "دکتر احمدی", Specialty: "پوست"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data dto.DoctorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "دکتر احمدی — پوست", created.Data.Label)

	rec = f.request(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/doctors/%d", created.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/v1/admin/doctors/999", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/v1/admin/services", token, dto.CreateServiceRequest{Name: "فیشیال"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/v1/admin/services", token, dto.CreateServiceRequest{Name: "فیشیال"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/v1/admin/services", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AppointmentsByDate(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t)

	doctorLabel := "دکتر احمدی — پوست"
	serviceName := "فیشیال"
	dateGregorian := "2024-03-02"
	dateJalali := "1402/12/12 - شنبه"
	timeSlot := "10:00"
	_, err := f.bookings.Confirm(context.Background(), 1001, "کاربر تست", &service.BookingSession{
		State:         service.StateTimeChosen,
		DoctorLabel:   &doctorLabel,
		ServiceName:   &serviceName,
		DateGregorian: &dateGregorian,
		DateJalali:    &dateJalali,
		TimeSlot:      &timeSlot,
	})
	require.NoError(t, err)

	rec := f.request(t, http.MethodGet, "/api/v1/admin/appointments?date=2024-03-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.AppointmentListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Total)
	require.Equal(t, doctorLabel, resp.Data.Appointments[0].DoctorLabel)

	rec = f.request(t, http.MethodGet, "/api/v1/admin/appointments?date=12-03-2024", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_WebhookMounted(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/webhook/telegram", "", map[string]int{"update_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)
}
