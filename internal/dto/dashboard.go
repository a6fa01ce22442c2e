package dto

import (
	"time"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

// DashboardResponse is the staff dashboard payload.
type DashboardResponse struct {
	Stats         models.Stats  `json:"stats"`
	UpcomingSlots []models.Slot `json:"upcoming_slots"`
	GeneratedAt   time.Time     `json:"generated_at"`
}
