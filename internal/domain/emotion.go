package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for emotion records
var (
	ErrEmptyEventID      = errors.New("emotion event ID cannot be empty")
	ErrEmptyEventUserID  = errors.New("emotion event user ID cannot be empty")
	ErrEmptyEmotion      = errors.New("emotion label cannot be empty")
	ErrEmptyEventTime    = errors.New("emotion event timestamp cannot be empty")
	ErrEmptyJournalID    = errors.New("journal entry ID cannot be empty")
	ErrEmptyJournalUser  = errors.New("journal entry user ID cannot be empty")
	ErrEmptyJournalText  = errors.New("journal entry content cannot be empty")
	ErrEmptyJournalTime  = errors.New("journal entry timestamp cannot be empty")
	ErrNegativeIntensity = errors.New("intensity cannot be negative")
)

// EmotionEvent is a single emotion logged by a user. Events are immutable once
// recorded. Emotion labels are free-form and compared case-sensitively.
type EmotionEvent struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Timestamp time.Time    `json:"timestamp"`
	Emotion   string       `json:"emotion"`
	Intensity float64      `json:"intensity"`
	Triggers  TriggerValue `json:"triggers"`
	Notes     string       `json:"notes,omitempty"`
}

// NewEmotionEvent creates a new EmotionEvent with a generated ID.
// A zero timestamp defaults to the current time. Returns an error if
// validation fails.
func NewEmotionEvent(
	userID uuid.UUID,
	emotion string,
	intensity float64,
	triggers TriggerValue,
	at time.Time,
) (*EmotionEvent, error) {
	if at.IsZero() {
		at = time.Now()
	}

	event := &EmotionEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: at.UTC(),
		Emotion:   strings.TrimSpace(emotion),
		Intensity: intensity,
		Triggers:  triggers,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the EmotionEvent has valid data.
func (e *EmotionEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEventID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEventUserID
	}

	if e.Emotion == "" {
		return ErrEmptyEmotion
	}

	if e.Timestamp.IsZero() {
		return ErrEmptyEventTime
	}

	if e.Intensity < 0 {
		return ErrNegativeIntensity
	}

	return nil
}

// JournalEntry is a free-text journal record. It is returned alongside
// emotion events but never analyzed statistically.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion,omitempty"`
}

// NewJournalEntry creates a new JournalEntry with a generated ID.
func NewJournalEntry(userID uuid.UUID, content, emotion string, at time.Time) (*JournalEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}

	entry := &JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: at.UTC(),
		Content:   content,
		Emotion:   strings.TrimSpace(emotion),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the JournalEntry has valid data.
func (j *JournalEntry) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJournalID
	}
	if j.UserID == uuid.Nil {
		return ErrEmptyJournalUser
	}
	if strings.TrimSpace(j.Content) == "" {
		return ErrEmptyJournalText
	}
	if j.Timestamp.IsZero() {
		return ErrEmptyJournalTime
	}
	return nil
}
