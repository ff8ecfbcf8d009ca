package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "kv_decode_failed").
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator can take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
	// FieldKey is the storage key involved in a persistence operation.
	FieldKey = "key"
	// FieldMemberID identifies a roster member.
	FieldMemberID = "member_id"
	// FieldSongID identifies a roster song.
	FieldSongID = "song_id"
)
