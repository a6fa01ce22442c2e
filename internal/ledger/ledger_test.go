package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

// fakeStore serializes through JSON like the real stores, so reopen tests
// catch fields that do not survive the wire format.
type fakeStore struct {
	raw       []byte
	saveCount int
	failNext  error
}

func (s *fakeStore) Load() (*models.Snapshot, error) {
	if s.raw == nil {
		return nil, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(s.raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *fakeStore) Save(snap *models.Snapshot) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.raw = raw
	s.saveCount++
	return nil
}

func openTestLedger(t *testing.T) (*Ledger, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	l, err := Open(store, Seed{
		Config: models.SystemConfig{
			RegistrationOpen: true,
			MaxDailyCapacity: 200,
			MaxGroupSize:     15,
			Reminders:        models.ReminderToggles{ConfirmationEmail: true},
		},
	}, nil)
	require.NoError(t, err)
	l.WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	})
	return l, store
}

func mustCreateSlot(t *testing.T, l *Ledger, gender models.Gender, capacity int) models.Slot {
	t.Helper()
	slot, err := l.CreateSlot("2026-09-15", "09:00", "11:00", capacity, gender)
	require.NoError(t, err)
	return slot
}

func candidateFor(slot models.Slot, n int) models.Candidate {
	return models.Candidate{
		FullName:    fmt.Sprintf("Student %d", n),
		PhoneNumber: fmt.Sprintf("+4477000000%02d", n),
		Email:       fmt.Sprintf("student%d@example.com", n),
		Age:         20 + n,
		Gender:      slot.Gender,
		ArabicLevel: models.LevelBeginner,
		SlotID:      slot.ID,
	}
}

func TestRegisterAssignsCodeAndGroup(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 10)

	student, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^AIB-2026-[A-Z0-9]{6}$`), student.RegistrationCode)
	assert.Equal(t, "B1", student.GroupNumber)
	assert.False(t, student.CheckedIn)
	assert.Nil(t, student.CheckInTime)

	updated, err := l.SlotByID(slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.EnrolledCount)
}

func TestRegisterCapacityBoundary(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderFemale, 2)

	_, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)
	_, err = l.Register(candidateFor(slot, 2))
	require.NoError(t, err)

	_, err = l.Register(candidateFor(slot, 3))
	require.ErrorIs(t, err, appErrors.ErrSlotFull)

	updated, err := l.SlotByID(slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.EnrolledCount)
	assert.Len(t, l.Students(nil), 2)
}

func TestRegisterGenderMismatchLeavesStateUntouched(t *testing.T) {
	l, store := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	savesBefore := store.saveCount

	cand := candidateFor(slot, 1)
	cand.Gender = models.GenderFemale
	_, err := l.Register(cand)
	require.ErrorIs(t, err, appErrors.ErrGenderMismatch)

	assert.Empty(t, l.Students(nil))
	assert.Equal(t, savesBefore, store.saveCount)
	updated, err := l.SlotByID(slot.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.EnrolledCount)
}

func TestRegisterUnknownSlot(t *testing.T) {
	l, _ := openTestLedger(t)

	cand := models.Candidate{
		FullName: "Nobody", PhoneNumber: "+441110002233",
		Gender: models.GenderMale, ArabicLevel: models.LevelBeginner,
		SlotID: "missing",
	}
	_, err := l.Register(cand)
	require.ErrorIs(t, err, appErrors.ErrInvalidSlot)
}

func TestRegisterClosedGateWinsOverSlotValidation(t *testing.T) {
	l, _ := openTestLedger(t)

	closed := false
	_, err := l.PatchConfig(models.ConfigPatch{RegistrationOpen: &closed})
	require.NoError(t, err)

	cand := models.Candidate{
		FullName: "Late Arrival", PhoneNumber: "+441110002244",
		Gender: models.GenderMale, ArabicLevel: models.LevelBeginner,
		SlotID: "missing",
	}
	_, err = l.Register(cand)
	require.ErrorIs(t, err, appErrors.ErrRegistrationClosed)
}

func TestRegisterSaveFailureRollsBack(t *testing.T) {
	l, store := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)

	store.failNext = errors.New("disk full")
	_, err := l.Register(candidateFor(slot, 1))
	require.Error(t, err)

	assert.Empty(t, l.Students(nil))
	updated, err := l.SlotByID(slot.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.EnrolledCount)

	// The next attempt succeeds, the failed write left nothing behind.
	_, err = l.Register(candidateFor(slot, 1))
	require.NoError(t, err)
	assert.Len(t, l.Students(nil), 1)
}

func TestRegisterRecordsConfirmationNotification(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)

	student, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)

	log := l.Notifications()
	require.Len(t, log, 1)
	assert.Equal(t, models.NotificationConfirmation, log[0].Type)
	assert.Equal(t, student.Email, log[0].Recipient)
	assert.Equal(t, models.NotificationSent, log[0].Status)
}

func TestRegisterSkipsNotificationWhenToggleOff(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)

	off := false
	_, err := l.PatchConfig(models.ConfigPatch{ConfirmationEmail: &off})
	require.NoError(t, err)

	_, err = l.Register(candidateFor(slot, 1))
	require.NoError(t, err)
	assert.Empty(t, l.Notifications())
}

func TestGroupNumbersAdvanceAtGroupSize(t *testing.T) {
	l, _ := openTestLedger(t)

	three := 3
	_, err := l.PatchConfig(models.ConfigPatch{MaxGroupSize: &three})
	require.NoError(t, err)

	slot := mustCreateSlot(t, l, models.GenderMale, 10)
	groups := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		student, err := l.Register(candidateFor(slot, i))
		require.NoError(t, err)
		groups = append(groups, student.GroupNumber)
	}
	assert.Equal(t, []string{"B1", "B1", "B1", "B2"}, groups)
}

func TestGroupNumberUsesLevelInitial(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderFemale, 10)

	cand := candidateFor(slot, 1)
	cand.ArabicLevel = models.LevelAdvanced
	student, err := l.Register(cand)
	require.NoError(t, err)
	assert.Equal(t, "A1", student.GroupNumber)
}

func TestCheckInByCodeAndIdempotency(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	student, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)

	checked, err := l.CheckIn(student.RegistrationCode)
	require.NoError(t, err)
	assert.True(t, checked.CheckedIn)
	require.NotNil(t, checked.CheckInTime)
	firstTime := *checked.CheckInTime

	l.WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
	})
	_, err = l.CheckIn(student.RegistrationCode)
	require.ErrorIs(t, err, appErrors.ErrAlreadyCheckedIn)

	again, err := l.StudentByCode(student.RegistrationCode)
	require.NoError(t, err)
	require.NotNil(t, again.CheckInTime)
	assert.Equal(t, firstTime, *again.CheckInTime)
}

func TestCheckInByPhone(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	student, err := l.Register(candidateFor(slot, 7))
	require.NoError(t, err)

	checked, err := l.CheckIn(student.PhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, student.ID, checked.ID)
	assert.True(t, checked.CheckedIn)
}

func TestCheckInUnknownCode(t *testing.T) {
	l, _ := openTestLedger(t)
	_, err := l.CheckIn("AIB-2026-ZZZZZZ")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestFindStudentFirstMatchWins(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 10)

	first, err := l.Register(models.Candidate{
		FullName: "Ahmed Hassan", PhoneNumber: "+441110000001",
		Email: "ahmed@example.com", Age: 21, Gender: models.GenderMale,
		ArabicLevel: models.LevelBeginner, SlotID: slot.ID,
	})
	require.NoError(t, err)

	_, err = l.Register(models.Candidate{
		FullName: "Hassan Ali", PhoneNumber: "+441110000002",
		Email: "hassan@example.com", Age: 25, Gender: models.GenderMale,
		ArabicLevel: models.LevelIntermediate, SlotID: slot.ID,
	})
	require.NoError(t, err)

	// Both names contain "hassan"; enrollment order decides.
	found, ok := l.FindStudent("hassan")
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)

	// Exact code lookup still resolves the second student.
	second, ok := l.FindStudent("+441110000002")
	require.True(t, ok)
	assert.Equal(t, "Hassan Ali", second.FullName)
}

func TestFindStudentEmptyQuery(t *testing.T) {
	l, _ := openTestLedger(t)
	_, ok := l.FindStudent("   ")
	assert.False(t, ok)
}

func TestLookupStudentExactOnly(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	student, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)

	got, ok := l.LookupStudent(student.PhoneNumber)
	require.True(t, ok)
	assert.Equal(t, student.RegistrationCode, got.RegistrationCode)

	// Name substrings satisfy FindStudent but never LookupStudent.
	_, ok = l.FindStudent("Student")
	assert.True(t, ok)
	_, ok = l.LookupStudent("Student")
	assert.False(t, ok)
}

func TestStatsCountsAndGenderFilter(t *testing.T) {
	l, _ := openTestLedger(t)
	maleSlot := mustCreateSlot(t, l, models.GenderMale, 10)
	femaleSlot := mustCreateSlot(t, l, models.GenderFemale, 10)

	for i := 0; i < 3; i++ {
		_, err := l.Register(candidateFor(maleSlot, i))
		require.NoError(t, err)
	}
	female, err := l.Register(candidateFor(femaleSlot, 10))
	require.NoError(t, err)

	_, err = l.CheckIn(female.RegistrationCode)
	require.NoError(t, err)

	all := l.Stats(nil)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 1, all.CheckedIn)
	assert.Equal(t, 3, all.Booked)
	assert.Equal(t, 4, all.TodayExpected)
	assert.Equal(t, 4, all.LevelCounts["Beginner"])

	male := models.GenderMale
	scoped := l.Stats(&male)
	assert.Equal(t, 3, scoped.Total)
	assert.Zero(t, scoped.CheckedIn)
	assert.Equal(t, 3, scoped.Booked)
}

func TestUpdateSlotCapacityBelowEnrollment(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	for i := 0; i < 3; i++ {
		_, err := l.Register(candidateFor(slot, i))
		require.NoError(t, err)
	}

	two := 2
	_, err := l.UpdateSlot(slot.ID, models.SlotPatch{Capacity: &two})
	require.ErrorIs(t, err, appErrors.ErrCapacityViolation)

	four := 4
	updated, err := l.UpdateSlot(slot.ID, models.SlotPatch{Capacity: &four})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Capacity)
}

func TestUpdateSlotGenderLockedOnceEnrolled(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)

	female := models.GenderFemale
	updated, err := l.UpdateSlot(slot.ID, models.SlotPatch{Gender: &female})
	require.NoError(t, err)
	assert.Equal(t, models.GenderFemale, updated.Gender)

	_, err = l.Register(candidateFor(updated, 1))
	require.NoError(t, err)

	male := models.GenderMale
	_, err = l.UpdateSlot(slot.ID, models.SlotPatch{Gender: &male})
	require.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestDeleteSlotWithEnrollments(t *testing.T) {
	l, _ := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	_, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)

	err = l.DeleteSlot(slot.ID)
	require.ErrorIs(t, err, appErrors.ErrSlotHasEnrollments)

	empty := mustCreateSlot(t, l, models.GenderFemale, 5)
	require.NoError(t, l.DeleteSlot(empty.ID))
	_, err = l.SlotByID(empty.ID)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestListSlotsSortedByDate(t *testing.T) {
	l, _ := openTestLedger(t)
	_, err := l.CreateSlot("2026-09-20", "09:00", "11:00", 5, models.GenderMale)
	require.NoError(t, err)
	_, err = l.CreateSlot("2026-09-10", "09:00", "11:00", 5, models.GenderMale)
	require.NoError(t, err)
	_, err = l.CreateSlot("2026-09-15", "09:00", "11:00", 5, models.GenderFemale)
	require.NoError(t, err)

	slots := l.ListSlots()
	require.Len(t, slots, 3)
	assert.Equal(t, "2026-09-10", slots[0].Date)
	assert.Equal(t, "2026-09-15", slots[1].Date)
	assert.Equal(t, "2026-09-20", slots[2].Date)
}

func TestNotificationLogCappedMostRecentFirst(t *testing.T) {
	l, _ := openTestLedger(t)

	for i := 0; i < 55; i++ {
		_, err := l.RecordNotification(models.NotificationTest, fmt.Sprintf("r%d@example.com", i))
		require.NoError(t, err)
	}

	log := l.Notifications()
	require.Len(t, log, 50)
	assert.Equal(t, "r54@example.com", log[0].Recipient)
	assert.Equal(t, "r5@example.com", log[49].Recipient)
}

func TestAdminLifecycle(t *testing.T) {
	l, _ := openTestLedger(t)

	created, err := l.CreateAdmin(models.AdminUser{
		Username: "frontdesk1", PasswordHash: "hash",
		Role: models.RoleFrontDesk, Gender: models.GenderFemale, Active: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = l.CreateAdmin(models.AdminUser{Username: "frontdesk1"})
	require.ErrorIs(t, err, appErrors.ErrConflict)

	inactive := false
	role := models.RoleAdmin
	patched, err := l.PatchAdmin(created.ID, models.AdminPatch{Role: &role, Active: &inactive}, "newhash")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, patched.Role)
	assert.False(t, patched.Active)
	assert.Equal(t, "newhash", patched.PasswordHash)

	byName, err := l.AdminByUsername("frontdesk1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	l.RecordLogin(created.ID, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	byName, err = l.AdminByUsername("frontdesk1")
	require.NoError(t, err)
	require.NotNil(t, byName.LastLogin)
}

func TestReopenFromStoreKeepsState(t *testing.T) {
	l, store := openTestLedger(t)
	slot := mustCreateSlot(t, l, models.GenderMale, 5)
	student, err := l.Register(candidateFor(slot, 1))
	require.NoError(t, err)
	_, err = l.CheckIn(student.RegistrationCode)
	require.NoError(t, err)
	_, err = l.CreateAdmin(models.AdminUser{
		Username: "desk", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role: models.RoleFrontDesk, Gender: models.GenderMale, Active: true,
	})
	require.NoError(t, err)

	reopened, err := Open(store, Seed{}, nil)
	require.NoError(t, err)

	restored, err := reopened.StudentByCode(student.RegistrationCode)
	require.NoError(t, err)
	assert.True(t, restored.CheckedIn)
	assert.Equal(t, student.GroupNumber, restored.GroupNumber)

	s, err := reopened.SlotByID(slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.EnrolledCount)

	cfg := reopened.Config()
	assert.True(t, cfg.RegistrationOpen)
	assert.Equal(t, 15, cfg.MaxGroupSize)

	// Credential hashes must survive the snapshot, or every staff account is
	// locked out after a restart.
	account, err := reopened.AdminByUsername("desk")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", account.PasswordHash)
}

func TestGroupNumberHelper(t *testing.T) {
	assert.Equal(t, "B1", groupNumber(models.LevelBeginner, 0, 15))
	assert.Equal(t, "B1", groupNumber(models.LevelBeginner, 14, 15))
	assert.Equal(t, "B2", groupNumber(models.LevelBeginner, 15, 15))
	assert.Equal(t, "I3", groupNumber(models.LevelIntermediate, 30, 15))
	assert.Equal(t, "?1", groupNumber("", 0, 15))
	// Non-positive group size falls back to the default.
	assert.Equal(t, "E2", groupNumber(models.LevelElementary, 15, 0))
}
