package models

// SnapshotSchemaVersion tags persisted documents so future migrations can
// recognise what they are loading.
const SnapshotSchemaVersion = 1

// Snapshot is the whole ledger state as one document. It is loaded wholesale
// at startup and rewritten wholesale after every mutation.
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	Slots         []Slot            `json:"slots"`
	Students      []Student         `json:"students"`
	Admins        []AdminUser       `json:"admins"`
	Config        SystemConfig      `json:"config"`
	Notifications []NotificationLog `json:"notifications"`
}

// Clone returns a deep copy so a saved snapshot cannot alias live ledger
// state.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		SchemaVersion: s.SchemaVersion,
		Config:        s.Config,
	}
	out.Slots = append([]Slot(nil), s.Slots...)
	out.Students = append([]Student(nil), s.Students...)
	out.Admins = append([]AdminUser(nil), s.Admins...)
	out.Notifications = append([]NotificationLog(nil), s.Notifications...)
	return out
}
