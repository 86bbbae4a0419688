package handler

import (
	"net/http"
	"time"

	"clinic-booking-bot/internal/usecase"
	"clinic-booking-bot/pkg/response"
)

type AppointmentHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAppointmentHandler(adminUsecase usecase.AdminUsecase) *AppointmentHandler {
	return &AppointmentHandler{adminUsecase: adminUsecase}
}

// GetAppointments lists appointments for the date given in the "date" query
// parameter (YYYY-MM-DD). Today is used when the parameter is absent.
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	appointments, err := h.adminUsecase.ListAppointmentsForDate(r.Context(), date)
	if err != nil {
		if err == usecase.ErrInvalidDate {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
