package models

// Gender designates both appointment slots and candidates. Assessment
// sessions are segregated, so a registration is only valid against a slot of
// the same designation.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether the value is one of the two known designations.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Slot is a bookable assessment window. EnrolledCount never exceeds Capacity
// and is only ever incremented; there is no cancellation flow.
type Slot struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolled_count"`
	Gender        Gender `json:"gender"`
}

// Remaining returns the number of seats still bookable.
func (s Slot) Remaining() int {
	if s.EnrolledCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.EnrolledCount
}

// SlotPatch enumerates the fields that may change after creation. Date and
// times are fixed once a slot exists; gender only while nothing is enrolled.
type SlotPatch struct {
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Gender   *Gender `json:"gender,omitempty"`
}
