package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEmotionEvent(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	at := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	event, err := NewEmotionEvent(userID, " Anxious ", 4, RawTrigger("exam"), at)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if event.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if event.Emotion != "Anxious" {
		t.Errorf("Expected trimmed emotion label, got %q", event.Emotion)
	}

	if event.Timestamp.Location() != time.UTC {
		t.Errorf("Expected timestamp normalized to UTC, got %s", event.Timestamp.Location())
	}

	if !event.Timestamp.Equal(at) {
		t.Errorf("Expected timestamp %s, got %s", at, event.Timestamp)
	}

	// Test invalid user
	_, err = NewEmotionEvent(uuid.Nil, "Anxious", 4, TriggerValue{}, at)
	if err != ErrEmptyEventUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyEventUserID, err)
	}

	// Test empty emotion
	_, err = NewEmotionEvent(userID, "   ", 4, TriggerValue{}, at)
	if err != ErrEmptyEmotion {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmotion, err)
	}

	// Test negative intensity
	_, err = NewEmotionEvent(userID, "Calm", -1, TriggerValue{}, at)
	if err != ErrNegativeIntensity {
		t.Errorf("Expected error %v, got %v", ErrNegativeIntensity, err)
	}

	// Zero time defaults to now
	event, err = NewEmotionEvent(userID, "Calm", 1, TriggerValue{}, time.Time{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if event.Timestamp.IsZero() {
		t.Error("Expected non-zero timestamp")
	}
}

func TestNewJournalEntry(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	entry, err := NewJournalEntry(userID, "Long day at work", "Tired", time.Time{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	_, err = NewJournalEntry(userID, "  ", "", time.Time{})
	if err != ErrEmptyJournalText {
		t.Errorf("Expected error %v, got %v", ErrEmptyJournalText, err)
	}

	_, err = NewJournalEntry(uuid.Nil, "text", "", time.Time{})
	if err != ErrEmptyJournalUser {
		t.Errorf("Expected error %v, got %v", ErrEmptyJournalUser, err)
	}
}
