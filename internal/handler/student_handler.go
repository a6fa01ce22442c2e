package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// StudentHandler wires staff-facing student endpoints to the booking service.
type StudentHandler struct {
	service *service.BookingService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.BookingService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List registered students
// @Description List students, scoped to the caller's gender for front-desk accounts
// @Tags Students
// @Produce json
// @Param gender query string false "Gender filter (Male or Female)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students := h.service.List(genderScope(c))
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Search godoc
// @Summary Find one student
// @Description Look up a student by registration code, phone number, or name fragment
// @Tags Students
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "query parameter q is required"))
		return
	}

	student, found := h.service.Search(query)
	if !found {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no student matches the query"))
		return
	}

	if scope := genderScope(c); scope != nil && student.Gender != *scope {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no student matches the query"))
		return
	}

	response.JSON(c, http.StatusOK, student)
}
