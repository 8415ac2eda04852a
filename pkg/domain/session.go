package domain

import "time"

// SessionStatus tracks where a recorded session stands.
type SessionStatus string

const (
	SessionActive      SessionStatus = "active"
	SessionRecommended SessionStatus = "recommended"
	SessionEnded       SessionStatus = "ended"
)

// SessionRecord is the operator-facing audit record kept per platform session.
// The platform owns the dialog state; this record only mirrors it.
type SessionRecord struct {
	SessionID  string            `json:"session_id"`
	UserID     string            `json:"user_id,omitempty"`
	Turns      int               `json:"turns"`
	Answers    map[string]string `json:"answers,omitempty"`
	LastPrompt string            `json:"last_prompt,omitempty"`
	Outcome    *Outcome          `json:"outcome,omitempty"`
	Status     SessionStatus     `json:"status"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Sealed holds the encrypted record when the store encrypts at rest.
	Sealed string `json:"sealed,omitempty"`
}

// NewSessionRecord creates an empty active record.
func NewSessionRecord(sessionID string) *SessionRecord {
	return &SessionRecord{
		SessionID: sessionID,
		Answers:   make(map[string]string),
		Status:    SessionActive,
	}
}

// Clone returns a deep copy of the record.
func (r *SessionRecord) Clone() *SessionRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Answers = make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		c.Answers[k] = v
	}
	if r.Outcome != nil {
		o := *r.Outcome
		c.Outcome = &o
	}
	return &c
}
