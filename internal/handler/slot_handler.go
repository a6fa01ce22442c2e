package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	"github.com/sheriffsaka/alibaanah-v1/internal/service"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/response"
)

// SlotHandler wires slot endpoints to the slot service.
type SlotHandler struct {
	service *service.SlotService
}

// NewSlotHandler creates a new handler.
func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{service: svc}
}

// List godoc
// @Summary List interview slots
// @Description List all interview slots with remaining capacity
// @Tags Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}

// Get godoc
// @Summary Get one slot
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}

// Create godoc
// @Summary Create an interview slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body service.CreateSlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req service.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Update an interview slot
// @Description Adjust capacity or gender designation for a slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body models.SlotPatch true "Slot patch"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /slots/{id} [patch]
func (h *SlotHandler) Update(c *gin.Context) {
	var patch models.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot patch"))
		return
	}

	slot, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}

// Delete godoc
// @Summary Delete an interview slot
// @Description Remove a slot; refused while students are booked into it
// @Tags Slots
// @Param id path string true "Slot ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
