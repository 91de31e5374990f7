package conversation

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("conversation not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrMissingCallID    = errors.New("missing call id")
)

// TranscriptEntry is one timestamped utterance attributed to a speaker.
type TranscriptEntry struct {
	ID        int    `json:"id"`
	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
	User      string `json:"user"`
}

// CallRecord is the transcript and outcome of one placed call, as delivered
// by the provider's webhook. Transcripts keep webhook order.
type CallRecord struct {
	CallID                 string            `json:"call_id"`
	Transcripts            []TranscriptEntry `json:"transcripts"`
	ConcatenatedTranscript string            `json:"concatenated_transcript"`
	Summary                string            `json:"summary"`
	CallLength             float64           `json:"call_length"`
	Price                  float64           `json:"price"`
}

// Clone returns a deep copy so stored records cannot be mutated by callers.
func (r *CallRecord) Clone() *CallRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Transcripts != nil {
		c.Transcripts = make([]TranscriptEntry, len(r.Transcripts))
		copy(c.Transcripts, r.Transcripts)
	}
	return &c
}

// Store keeps the most recent CallRecord per call id.
type Store interface {
	// Save upserts the record under its call id. A second record for the
	// same id replaces the first; nothing is merged.
	Save(ctx context.Context, record *CallRecord) error

	// Get returns the stored record or ErrNotFound.
	Get(ctx context.Context, callID string) (*CallRecord, error)

	Close() error
}
