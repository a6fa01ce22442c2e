package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// RegistrationHandler wires public registration endpoints to the booking service.
type RegistrationHandler struct {
	service *service.BookingService
	exports *service.ExportService
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(svc *service.BookingService, exports *service.ExportService) *RegistrationHandler {
	return &RegistrationHandler{service: svc, exports: exports}
}

// Register godoc
// @Summary Register a student
// @Description Book a seat in an interview slot and receive a registration code
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	student, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// Slip godoc
// @Summary Download admission slip
// @Description Render the admission slip PDF for a registration code
// @Tags Registrations
// @Produce application/pdf
// @Param code path string true "Registration code"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /registrations/{code}/slip [get]
func (h *RegistrationHandler) Slip(c *gin.Context) {
	code := c.Param("code")

	payload, err := h.exports.SlipPDF(code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=admission-slip-"+code+".pdf")
	c.Data(http.StatusOK, "application/pdf", payload)
}
