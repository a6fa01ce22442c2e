package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// NotificationHandler wires settings and notification-log endpoints.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// Settings godoc
// @Summary Get intake settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *NotificationHandler) Settings(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Settings())
}

// UpdateSettings godoc
// @Summary Update intake settings
// @Description Toggle registration, adjust capacities, and reminder switches
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body models.ConfigPatch true "Settings patch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings [patch]
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var patch models.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings patch"))
		return
	}

	cfg, err := h.service.PatchSettings(patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// Log godoc
// @Summary Notification log
// @Description Recorded notifications, most recent first
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) Log(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Log())
}

// SendTest godoc
// @Summary Record a test notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.SendTestRequest true "Test payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notifications/test [post]
func (h *NotificationHandler) SendTest(c *gin.Context) {
	var req service.SendTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid test notification payload"))
		return
	}

	entry, err := h.service.SendTest(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}
