package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// ExportHandler wires export endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// StudentsCSV godoc
// @Summary Export student roster
// @Description Download the registered-student roster as CSV
// @Tags Exports
// @Produce text/csv
// @Param gender query string false "Gender filter (Male or Female)"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /exports/students.csv [get]
func (h *ExportHandler) StudentsCSV(c *gin.Context) {
	payload, err := h.service.RosterCSV(genderScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "students-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", payload)
}
