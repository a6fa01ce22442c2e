package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

type fakeBookingLedger struct {
	registered  *models.Candidate
	registerErr error
	student     models.Student

	checkInArg string
	checkInErr error

	found    models.Student
	foundOK  bool
	students []models.Student

	slot    models.Slot
	slotErr error
}

func (f *fakeBookingLedger) Register(candidate models.Candidate) (models.Student, error) {
	f.registered = &candidate
	if f.registerErr != nil {
		return models.Student{}, f.registerErr
	}
	return f.student, nil
}

func (f *fakeBookingLedger) FindStudent(string) (models.Student, bool) {
	return f.found, f.foundOK
}

func (f *fakeBookingLedger) LookupStudent(string) (models.Student, bool) {
	return f.found, f.foundOK
}

func (f *fakeBookingLedger) CheckIn(codeOrPhone string) (models.Student, error) {
	f.checkInArg = codeOrPhone
	if f.checkInErr != nil {
		return models.Student{}, f.checkInErr
	}
	return f.student, nil
}

func (f *fakeBookingLedger) StudentByCode(code string) (models.Student, error) {
	if f.student.RegistrationCode != code {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	return f.student, nil
}

func (f *fakeBookingLedger) Students(gender *models.Gender) []models.Student {
	if gender == nil {
		return f.students
	}
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		if s.Gender == *gender {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeBookingLedger) SlotByID(string) (models.Slot, error) {
	if f.slotErr != nil {
		return models.Slot{}, f.slotErr
	}
	return f.slot, nil
}

func validRegisterRequest() RegisterStudentRequest {
	return RegisterStudentRequest{
		FullName:    "Ahmed Hassan",
		PhoneNumber: "+441110000001",
		Email:       "ahmed@example.com",
		Age:         22,
		Gender:      "Male",
		ArabicLevel: "Beginner",
		SlotID:      "slot-1",
	}
}

func TestBookingRegisterMapsRequest(t *testing.T) {
	ledger := &fakeBookingLedger{student: models.Student{ID: "st1", RegistrationCode: "AIB-2026-ABC123"}}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	student, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, "AIB-2026-ABC123", student.RegistrationCode)

	require.NotNil(t, ledger.registered)
	assert.Equal(t, models.GenderMale, ledger.registered.Gender)
	assert.Equal(t, models.LevelBeginner, ledger.registered.ArabicLevel)
	assert.Equal(t, "slot-1", ledger.registered.SlotID)
}

func TestBookingRegisterRejectsInvalidPayload(t *testing.T) {
	ledger := &fakeBookingLedger{}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	req := validRegisterRequest()
	req.Gender = "Other"
	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Nil(t, ledger.registered)

	req = validRegisterRequest()
	req.Email = "not-an-email"
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestBookingRegisterPropagatesLedgerError(t *testing.T) {
	ledger := &fakeBookingLedger{registerErr: appErrors.ErrSlotFull}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.ErrorIs(t, err, appErrors.ErrSlotFull)
}

func TestBookingCheckInPassesCode(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	ledger := &fakeBookingLedger{student: models.Student{ID: "st1", CheckedIn: true, CheckInTime: &now}}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	student, err := svc.CheckIn(context.Background(), CheckInRequest{Code: "AIB-2026-ABC123"})
	require.NoError(t, err)
	assert.True(t, student.CheckedIn)
	assert.Equal(t, "AIB-2026-ABC123", ledger.checkInArg)
}

func TestBookingCheckInRequiresCode(t *testing.T) {
	svc := NewBookingService(&fakeBookingLedger{}, nil, nil, nil, nil)
	_, err := svc.CheckIn(context.Background(), CheckInRequest{})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestBookingSearchMissIsNotAnError(t *testing.T) {
	svc := NewBookingService(&fakeBookingLedger{}, nil, nil, nil, nil)
	student, ok := svc.Search("nobody")
	assert.False(t, ok)
	assert.Nil(t, student)
}

func TestBookingSlipResolvesStudentAndSlot(t *testing.T) {
	ledger := &fakeBookingLedger{
		student: models.Student{RegistrationCode: "AIB-2026-ABC123", SlotID: "slot-1"},
		slot:    models.Slot{ID: "slot-1", Date: "2026-09-15"},
	}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	student, slot, err := svc.Slip("AIB-2026-ABC123")
	require.NoError(t, err)
	assert.Equal(t, "AIB-2026-ABC123", student.RegistrationCode)
	assert.Equal(t, "2026-09-15", slot.Date)

	_, _, err = svc.Slip("AIB-2026-ZZZZZZ")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestBookingListAppliesGenderScope(t *testing.T) {
	ledger := &fakeBookingLedger{students: []models.Student{
		{ID: "m1", Gender: models.GenderMale},
		{ID: "f1", Gender: models.GenderFemale},
	}}
	svc := NewBookingService(ledger, nil, nil, nil, nil)

	assert.Len(t, svc.List(nil), 2)

	female := models.GenderFemale
	scoped := svc.List(&female)
	require.Len(t, scoped, 1)
	assert.Equal(t, "f1", scoped[0].ID)
}
