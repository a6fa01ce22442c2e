package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// CheckInHandler wires the arrival desk endpoint to the booking service.
type CheckInHandler struct {
	service *service.BookingService
}

// NewCheckInHandler creates a new handler.
func NewCheckInHandler(svc *service.BookingService) *CheckInHandler {
	return &CheckInHandler{service: svc}
}

// CheckIn godoc
// @Summary Check a student in
// @Description Mark a student as arrived by registration code or phone number
// @Tags Check-ins
// @Accept json
// @Produce json
// @Param payload body service.CheckInRequest true "Check-in payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /checkins [post]
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var req service.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check-in payload"))
		return
	}

	if scope := genderScope(c); scope != nil {
		if existing, found := h.service.Lookup(req.Code); found && existing.Gender != *scope {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "student is outside your intake scope"))
			return
		}
	}

	student, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}
