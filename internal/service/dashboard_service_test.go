package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
)

type fakeDashboardLedger struct {
	stats models.Stats
	slots []models.Slot

	genderSeen *models.Gender
}

func (f *fakeDashboardLedger) Stats(gender *models.Gender) models.Stats {
	f.genderSeen = gender
	return f.stats
}

func (f *fakeDashboardLedger) ListSlots() []models.Slot {
	return f.slots
}

func testClock() time.Time {
	return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
}

func TestDashboardStatsWithoutCache(t *testing.T) {
	ledger := &fakeDashboardLedger{stats: models.Stats{Total: 10, CheckedIn: 4, Booked: 6, TodayExpected: 10}}
	svc := NewDashboardService(ledger, nil, time.Minute, nil).WithClock(testClock)

	payload, cached, err := svc.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 10, payload.Stats.Total)
	assert.Equal(t, 6, payload.Stats.Booked)
	assert.Equal(t, testClock(), payload.GeneratedAt)
	assert.Nil(t, ledger.genderSeen)
}

func TestDashboardStatsPassesGenderScope(t *testing.T) {
	ledger := &fakeDashboardLedger{}
	svc := NewDashboardService(ledger, nil, time.Minute, nil).WithClock(testClock)

	female := models.GenderFemale
	_, _, err := svc.Stats(context.Background(), &female)
	require.NoError(t, err)
	require.NotNil(t, ledger.genderSeen)
	assert.Equal(t, models.GenderFemale, *ledger.genderSeen)
}

func TestDashboardUpcomingSlotsFilterSortLimit(t *testing.T) {
	ledger := &fakeDashboardLedger{slots: []models.Slot{
		{ID: "past", Date: "2026-08-30", Capacity: 10, Gender: models.GenderMale},
		{ID: "full", Date: "2026-09-02", Capacity: 5, EnrolledCount: 5, Gender: models.GenderMale},
		{ID: "late", Date: "2026-09-10", StartTime: "09:00", Capacity: 5, Gender: models.GenderMale},
		{ID: "today-pm", Date: "2026-09-01", StartTime: "14:00", Capacity: 5, Gender: models.GenderMale},
		{ID: "today-am", Date: "2026-09-01", StartTime: "09:00", Capacity: 5, Gender: models.GenderMale},
		{ID: "female", Date: "2026-09-03", Capacity: 5, Gender: models.GenderFemale},
	}}
	svc := NewDashboardService(ledger, nil, time.Minute, nil).WithClock(testClock)

	male := models.GenderMale
	payload, _, err := svc.Stats(context.Background(), &male)
	require.NoError(t, err)

	ids := make([]string, 0, len(payload.UpcomingSlots))
	for _, s := range payload.UpcomingSlots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"today-am", "today-pm", "late"}, ids)
}
