package models

import "time"

// ArabicLevel is the candidate's self-reported proficiency band. Its first
// letter seeds the group number.
type ArabicLevel string

const (
	LevelBeginner     ArabicLevel = "Beginner"
	LevelElementary   ArabicLevel = "Elementary"
	LevelIntermediate ArabicLevel = "Intermediate"
	LevelAdvanced     ArabicLevel = "Advanced"
)

// Valid reports whether the level is a known band.
func (l ArabicLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelElementary, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Student is one applicant's booking record. Created exactly once by a
// successful registration; CheckedIn flips to true exactly once; nothing else
// is ever edited.
type Student struct {
	ID               string      `json:"id"`
	FullName         string      `json:"full_name"`
	PhoneNumber      string      `json:"phone_number"`
	Email            string      `json:"email"`
	Age              int         `json:"age"`
	Gender           Gender      `json:"gender"`
	Address          string      `json:"address"`
	ArabicLevel      ArabicLevel `json:"arabic_level"`
	SlotID           string      `json:"slot_id"`
	RegistrationCode string      `json:"registration_code"`
	GroupNumber      string      `json:"group_number"`
	CheckedIn        bool        `json:"checked_in"`
	CheckInTime      *time.Time  `json:"check_in_time,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Candidate is the registration input: a Student minus the fields the ledger
// derives (id, code, group, check-in state, timestamps).
type Candidate struct {
	FullName    string      `json:"full_name"`
	PhoneNumber string      `json:"phone_number"`
	Email       string      `json:"email"`
	Age         int         `json:"age"`
	Gender      Gender      `json:"gender"`
	Address     string      `json:"address"`
	ArabicLevel ArabicLevel `json:"arabic_level"`
	SlotID      string      `json:"slot_id"`
}
