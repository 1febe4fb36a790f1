package handler

import (
	"net/http"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	filter := &entity.AppointmentFilter{
		StartAt: r.URL.Query().Get("from"),
		EndAt:   r.URL.Query().Get("to"),
	}

	dashboard, err := h.dashboardUsecase.GetDashboard(r.Context(), filter)
	if err != nil {
		switch err {
		case usecase.ErrUnauthorized:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
