package models

// ReminderToggles gates which notification-log entries the ledger records.
// There is no delivery machinery behind them, only bookkeeping.
type ReminderToggles struct {
	ConfirmationEmail bool `json:"confirmation_email"`
	TwentyFourHour    bool `json:"twenty_four_hour_email"`
	DayOf             bool `json:"day_of_email"`
}

// SystemConfig holds process-wide intake settings. MaxDailyCapacity is
// declared but takes no part in allocation; MaxGroupSize feeds group-number
// derivation.
type SystemConfig struct {
	RegistrationOpen bool            `json:"registration_open"`
	MaxDailyCapacity int             `json:"max_daily_capacity"`
	MaxGroupSize     int             `json:"max_group_size"`
	Reminders        ReminderToggles `json:"reminders"`
}

// ConfigPatch enumerates the mutable settings.
type ConfigPatch struct {
	RegistrationOpen  *bool `json:"registration_open,omitempty"`
	MaxDailyCapacity  *int  `json:"max_daily_capacity,omitempty" validate:"omitempty,gt=0"`
	MaxGroupSize      *int  `json:"max_group_size,omitempty" validate:"omitempty,gt=0"`
	ConfirmationEmail *bool `json:"confirmation_email,omitempty"`
	TwentyFourHour    *bool `json:"twenty_four_hour_email,omitempty"`
	DayOf             *bool `json:"day_of_email,omitempty"`
}
