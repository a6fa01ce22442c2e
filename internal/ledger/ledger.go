// Package ledger owns the booking state: appointment slots, student
// registrations, staff accounts, intake settings, and the notification log.
// It enforces the capacity and gender-match invariants, derives registration
// codes and group numbers, and records check-in state.
//
// A single mutex serialises the two mutating booking operations (register,
// check-in) and the administrative writes; expected traffic is front-desk and
// registration-form volume, so one lock is plenty. Writers build modified
// copies of the affected collections, persist the resulting snapshot, and
// only then publish the copies, so readers never observe a registration
// without its slot increment or vice versa.
package ledger

import (
	"crypto/rand"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
)

// SnapshotStore persists the whole ledger as one document. Load returns
// (nil, nil) when no snapshot exists yet.
type SnapshotStore interface {
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
}

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	codeMaxAttempts = 5

	notificationLogCap = 50
	defaultGroupSize   = 15
)

// Seed supplies initial state for a fresh (empty) store.
type Seed struct {
	Config models.SystemConfig
	Admins []models.AdminUser
}

// Ledger is the booking ledger. All exported methods are safe for concurrent
// use.
type Ledger struct {
	mu    sync.RWMutex
	store SnapshotStore

	slots         []models.Slot
	students      []models.Student
	admins        []models.AdminUser
	config        models.SystemConfig
	notifications []models.NotificationLog

	logger *zap.Logger
	now    func() time.Time
}

// Open loads the snapshot from the store, seeding a fresh one when the store
// is empty.
func Open(store SnapshotStore, seed Seed, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{store: store, logger: logger, now: time.Now}

	snap, err := store.Load()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ledger snapshot")
	}
	if snap == nil {
		snap = &models.Snapshot{
			SchemaVersion: models.SnapshotSchemaVersion,
			Config:        seed.Config,
			Admins:        append([]models.AdminUser(nil), seed.Admins...),
		}
		if err := store.Save(snap); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist initial snapshot")
		}
		logger.Info("seeded empty ledger", zap.Int("admins", len(snap.Admins)))
	}

	l.slots = snap.Slots
	l.students = snap.Students
	l.admins = snap.Admins
	l.config = snap.Config
	l.notifications = snap.Notifications
	if l.config.MaxGroupSize <= 0 {
		l.config.MaxGroupSize = defaultGroupSize
	}
	return l, nil
}

// WithClock overrides the time source. Intended for tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) snapshotLocked(slots []models.Slot, students []models.Student, admins []models.AdminUser, cfg models.SystemConfig, notifications []models.NotificationLog) *models.Snapshot {
	return &models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		Slots:         slots,
		Students:      students,
		Admins:        admins,
		Config:        cfg,
		Notifications: notifications,
	}
}

// ListSlots returns all slots ordered by date ascending; ties keep insertion
// order.
func (l *Ledger) ListSlots() []models.Slot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := append([]models.Slot(nil), l.slots...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// SlotByID returns the slot with the given identifier.
func (l *Ledger) SlotByID(id string) (models.Slot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Slot{}, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
}

// CreateSlot adds a new bookable window with zero enrollment. Overlapping
// windows for the same gender are not rejected; the schedule staff own the
// calendar.
func (l *Ledger) CreateSlot(date, startTime, endTime string, capacity int, gender models.Gender) (models.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := models.Slot{
		ID:        uuid.NewString(),
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  capacity,
		Gender:    gender,
	}

	slots := append(append([]models.Slot(nil), l.slots...), slot)
	if err := l.store.Save(l.snapshotLocked(slots, l.students, l.admins, l.config, l.notifications)); err != nil {
		return models.Slot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot")
	}
	l.slots = slots
	return slot, nil
}

// UpdateSlot applies a typed patch. Capacity may never drop below current
// enrollment; gender is locked once anyone is enrolled.
func (l *Ledger) UpdateSlot(id string, patch models.SlotPatch) (models.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, s := range l.slots {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Slot{}, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
	}

	updated := l.slots[idx]
	if patch.Capacity != nil {
		if *patch.Capacity < updated.EnrolledCount {
			return models.Slot{}, appErrors.Clone(appErrors.ErrCapacityViolation,
				fmt.Sprintf("capacity %d is below current enrollment %d", *patch.Capacity, updated.EnrolledCount))
		}
		updated.Capacity = *patch.Capacity
	}
	if patch.Gender != nil && *patch.Gender != updated.Gender {
		if updated.EnrolledCount > 0 {
			return models.Slot{}, appErrors.Clone(appErrors.ErrConflict, "gender cannot change once students are enrolled")
		}
		updated.Gender = *patch.Gender
	}

	slots := append([]models.Slot(nil), l.slots...)
	slots[idx] = updated
	if err := l.store.Save(l.snapshotLocked(slots, l.students, l.admins, l.config, l.notifications)); err != nil {
		return models.Slot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot update")
	}
	l.slots = slots
	return updated, nil
}

// DeleteSlot removes an empty slot permanently.
func (l *Ledger) DeleteSlot(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, s := range l.slots {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
	}
	if l.slots[idx].EnrolledCount > 0 {
		return appErrors.ErrSlotHasEnrollments
	}

	slots := append([]models.Slot(nil), l.slots[:idx]...)
	slots = append(slots, l.slots[idx+1:]...)
	if err := l.store.Save(l.snapshotLocked(slots, l.students, l.admins, l.config, l.notifications)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot deletion")
	}
	l.slots = slots
	return nil
}

// Register books a candidate into their chosen slot. Validation order: the
// registration-open gate, then slot existence, gender match, and remaining
// capacity. On success the student append and the slot increment land in the
// same snapshot write.
func (l *Ledger) Register(candidate models.Candidate) (models.Student, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.RegistrationOpen {
		return models.Student{}, appErrors.ErrRegistrationClosed
	}

	idx := -1
	for i, s := range l.slots {
		if s.ID == candidate.SlotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Student{}, appErrors.ErrInvalidSlot
	}
	slot := l.slots[idx]
	if candidate.Gender != slot.Gender {
		return models.Student{}, appErrors.ErrGenderMismatch
	}
	if slot.EnrolledCount >= slot.Capacity {
		return models.Student{}, appErrors.ErrSlotFull
	}

	code, err := l.newRegistrationCodeLocked()
	if err != nil {
		return models.Student{}, err
	}

	now := l.now().UTC()
	student := models.Student{
		ID:               uuid.NewString(),
		FullName:         candidate.FullName,
		PhoneNumber:      candidate.PhoneNumber,
		Email:            candidate.Email,
		Age:              candidate.Age,
		Gender:           candidate.Gender,
		Address:          candidate.Address,
		ArabicLevel:      candidate.ArabicLevel,
		SlotID:           slot.ID,
		RegistrationCode: code,
		GroupNumber:      groupNumber(candidate.ArabicLevel, slot.EnrolledCount, l.config.MaxGroupSize),
		CreatedAt:        now,
	}

	students := append(append([]models.Student(nil), l.students...), student)
	slots := append([]models.Slot(nil), l.slots...)
	slots[idx].EnrolledCount++

	notifications := l.notifications
	if l.config.Reminders.ConfirmationEmail && candidate.Email != "" {
		notifications = prependNotification(notifications, models.NotificationLog{
			ID:        uuid.NewString(),
			Type:      models.NotificationConfirmation,
			Recipient: candidate.Email,
			SentAt:    now,
			Status:    models.NotificationSent,
		})
	}

	if err := l.store.Save(l.snapshotLocked(slots, students, l.admins, l.config, notifications)); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist registration")
	}
	l.students = students
	l.slots = slots
	l.notifications = notifications

	l.logger.Info("student registered",
		zap.String("code", student.RegistrationCode),
		zap.String("slot_id", slot.ID),
		zap.String("group", student.GroupNumber),
	)
	return student, nil
}

// FindStudent scans registrations once, returning the first student whose
// registration code or phone matches exactly, or whose name contains the
// query case-insensitively. The scan order is enrollment order, so the first
// satisfying candidate wins regardless of which predicate matched.
func (l *Ledger) FindStudent(query string) (models.Student, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Student{}, false
	}
	needle := strings.ToLower(query)

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.students {
		if s.RegistrationCode == query || s.PhoneNumber == query ||
			strings.Contains(strings.ToLower(s.FullName), needle) {
			return s, true
		}
	}
	return models.Student{}, false
}

// StudentByCode resolves a registration code exactly. Used for slip
// retrieval, where a fuzzy name match would be wrong.
func (l *Ledger) StudentByCode(code string) (models.Student, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.students {
		if s.RegistrationCode == code {
			return s, nil
		}
	}
	return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
}

// LookupStudent resolves an exact registration code or phone number. It is
// the same match CheckIn applies, so the arrival desk can inspect the
// would-be target before mutating anything.
func (l *Ledger) LookupStudent(codeOrPhone string) (models.Student, bool) {
	codeOrPhone = strings.TrimSpace(codeOrPhone)

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.students {
		if s.RegistrationCode == codeOrPhone || s.PhoneNumber == codeOrPhone {
			return s, true
		}
	}
	return models.Student{}, false
}

// CheckIn flips the one-way checked-in flag for the student matching the
// exact registration code or phone number. A repeat call fails cleanly with
// AlreadyCheckedIn and leaves the first check-in time untouched.
func (l *Ledger) CheckIn(codeOrPhone string) (models.Student, error) {
	codeOrPhone = strings.TrimSpace(codeOrPhone)

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, s := range l.students {
		if s.RegistrationCode == codeOrPhone || s.PhoneNumber == codeOrPhone {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "no registration matches that code or phone")
	}
	if l.students[idx].CheckedIn {
		return models.Student{}, appErrors.ErrAlreadyCheckedIn
	}

	now := l.now().UTC()
	students := append([]models.Student(nil), l.students...)
	students[idx].CheckedIn = true
	students[idx].CheckInTime = &now

	if err := l.store.Save(l.snapshotLocked(l.slots, students, l.admins, l.config, l.notifications)); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist check-in")
	}
	l.students = students

	l.logger.Info("student checked in", zap.String("code", students[idx].RegistrationCode))
	return students[idx], nil
}

// Students returns registrations, optionally restricted to one gender for
// front-desk scoping. Order is enrollment order.
func (l *Ledger) Students(gender *models.Gender) []models.Student {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if gender == nil {
		return append([]models.Student(nil), l.students...)
	}
	out := make([]models.Student, 0, len(l.students))
	for _, s := range l.students {
		if s.Gender == *gender {
			out = append(out, s)
		}
	}
	return out
}

// Stats aggregates the (optionally gender-filtered) population. TodayExpected
// deliberately equals Total; see models.Stats.
func (l *Ledger) Stats(gender *models.Gender) models.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := models.Stats{LevelCounts: map[string]int{}}
	for _, s := range l.students {
		if gender != nil && s.Gender != *gender {
			continue
		}
		stats.Total++
		if s.CheckedIn {
			stats.CheckedIn++
		}
		stats.LevelCounts[string(s.ArabicLevel)]++
	}
	stats.Booked = stats.Total - stats.CheckedIn
	stats.TodayExpected = stats.Total
	return stats
}

// Config returns the current intake settings.
func (l *Ledger) Config() models.SystemConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// PatchConfig applies a typed settings patch.
func (l *Ledger) PatchConfig(patch models.ConfigPatch) (models.SystemConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg := l.config
	if patch.RegistrationOpen != nil {
		cfg.RegistrationOpen = *patch.RegistrationOpen
	}
	if patch.MaxDailyCapacity != nil {
		cfg.MaxDailyCapacity = *patch.MaxDailyCapacity
	}
	if patch.MaxGroupSize != nil {
		cfg.MaxGroupSize = *patch.MaxGroupSize
	}
	if patch.ConfirmationEmail != nil {
		cfg.Reminders.ConfirmationEmail = *patch.ConfirmationEmail
	}
	if patch.TwentyFourHour != nil {
		cfg.Reminders.TwentyFourHour = *patch.TwentyFourHour
	}
	if patch.DayOf != nil {
		cfg.Reminders.DayOf = *patch.DayOf
	}

	if err := l.store.Save(l.snapshotLocked(l.slots, l.students, l.admins, cfg, l.notifications)); err != nil {
		return models.SystemConfig{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist settings")
	}
	l.config = cfg
	return cfg, nil
}

// Notifications returns the log, most recent first.
func (l *Ledger) Notifications() []models.NotificationLog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.NotificationLog(nil), l.notifications...)
}

// RecordNotification appends a bookkeeping entry to the capped log.
func (l *Ledger) RecordNotification(kind models.NotificationType, recipient string) (models.NotificationLog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := models.NotificationLog{
		ID:        uuid.NewString(),
		Type:      kind,
		Recipient: recipient,
		SentAt:    l.now().UTC(),
		Status:    models.NotificationSent,
	}
	notifications := prependNotification(l.notifications, entry)

	if err := l.store.Save(l.snapshotLocked(l.slots, l.students, l.admins, l.config, notifications)); err != nil {
		return models.NotificationLog{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist notification log")
	}
	l.notifications = notifications
	return entry, nil
}

// Admins returns all staff accounts.
func (l *Ledger) Admins() []models.AdminUser {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.AdminUser(nil), l.admins...)
}

// AdminByUsername resolves a staff account for login.
func (l *Ledger) AdminByUsername(username string) (models.AdminUser, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, a := range l.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return models.AdminUser{}, appErrors.Clone(appErrors.ErrNotFound, "staff account not found")
}

// CreateAdmin adds a staff account. Usernames are unique.
func (l *Ledger) CreateAdmin(account models.AdminUser) (models.AdminUser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range l.admins {
		if a.Username == account.Username {
			return models.AdminUser{}, appErrors.Clone(appErrors.ErrConflict, "username already taken")
		}
	}
	account.ID = uuid.NewString()
	account.CreatedAt = l.now().UTC()

	admins := append(append([]models.AdminUser(nil), l.admins...), account)
	if err := l.store.Save(l.snapshotLocked(l.slots, l.students, admins, l.config, l.notifications)); err != nil {
		return models.AdminUser{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist staff account")
	}
	l.admins = admins
	return account, nil
}

// PatchAdmin applies a typed patch to a staff account. The password field,
// when present, must already be hashed by the caller.
func (l *Ledger) PatchAdmin(id string, patch models.AdminPatch, passwordHash string) (models.AdminUser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, a := range l.admins {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.AdminUser{}, appErrors.Clone(appErrors.ErrNotFound, "staff account not found")
	}

	updated := l.admins[idx]
	if patch.Role != nil {
		updated.Role = *patch.Role
	}
	if patch.Gender != nil {
		updated.Gender = *patch.Gender
	}
	if patch.Active != nil {
		updated.Active = *patch.Active
	}
	if passwordHash != "" {
		updated.PasswordHash = passwordHash
	}

	admins := append([]models.AdminUser(nil), l.admins...)
	admins[idx] = updated
	if err := l.store.Save(l.snapshotLocked(l.slots, l.students, admins, l.config, l.notifications)); err != nil {
		return models.AdminUser{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist staff account update")
	}
	l.admins = admins
	return updated, nil
}

// RecordLogin stamps the account's last login. Persistence failures are
// logged, not surfaced; the login itself already succeeded.
func (l *Ledger) RecordLogin(id string, ts time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.admins {
		if l.admins[i].ID == id {
			t := ts.UTC()
			l.admins[i].LastLogin = &t
			if err := l.store.Save(l.snapshotLocked(l.slots, l.students, l.admins, l.config, l.notifications)); err != nil {
				l.logger.Warn("failed to persist last login", zap.Error(err))
			}
			return
		}
	}
}

func (l *Ledger) newRegistrationCodeLocked() (string, error) {
	taken := make(map[string]struct{}, len(l.students))
	for _, s := range l.students {
		taken[s.RegistrationCode] = struct{}{}
	}

	year := l.now().UTC().Year()
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate registration code")
		}
		code := fmt.Sprintf("AIB-%d-%s", year, suffix)
		if _, exists := taken[code]; !exists {
			return code, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrInternal, "exhausted registration code attempts")
}

func randomSuffix() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// groupNumber derives the advisory evaluation-group label from the slot's
// enrollment count before the new student is added. Group size is advisory:
// the ordinal grows, capacity does not gate it.
func groupNumber(level models.ArabicLevel, priorEnrolled, maxGroupSize int) string {
	if maxGroupSize <= 0 {
		maxGroupSize = defaultGroupSize
	}
	initial := "?"
	if level != "" {
		initial = string(level[0])
	}
	return fmt.Sprintf("%s%d", initial, priorEnrolled/maxGroupSize+1)
}

func prependNotification(log []models.NotificationLog, entry models.NotificationLog) []models.NotificationLog {
	out := make([]models.NotificationLog, 0, len(log)+1)
	out = append(out, entry)
	out = append(out, log...)
	if len(out) > notificationLogCap {
		out = out[:notificationLogCap]
	}
	return out
}
