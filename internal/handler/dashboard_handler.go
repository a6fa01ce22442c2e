package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// DashboardHandler wires the staff dashboard endpoint to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Intake dashboard
// @Description Aggregate registration and check-in statistics with upcoming slots
// @Tags Dashboard
// @Produce json
// @Param gender query string false "Gender filter (Male or Female)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	payload, cached, err := h.service.Stats(c.Request.Context(), genderScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payload, map[string]interface{}{"cached": cached})
}
