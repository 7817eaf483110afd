package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one candidate's interview, reachable only through the session
// repository by its id. All mutation happens under the session's own lock;
// no lock is shared between sessions.
type Session struct {
	mu sync.Mutex

	Id        uuid.UUID
	Phase     string
	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time

	MaxDurationSeconds int
	TotalQuestions     int
	QuestionsAsked     int

	// Degraded marks that at least one dialogue reply came from the planned
	// question fallback instead of the generation collaborator.
	Degraded bool

	Profile   *CandidateProfile
	Questions []string

	Transcript        []TranscriptMessage
	LatestObservation *BehaviorObservation
	Stats             AggregatorState

	// Summary is computed exactly once when the session ends; later end
	// requests return it verbatim.
	Summary *SessionSummary
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendMessage appends to the transcript in call order. Caller must hold the
// session lock.
func (s *Session) AppendMessage(role, content string, at time.Time) TranscriptMessage {
	msg := TranscriptMessage{
		Seq:       len(s.Transcript),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
	s.Transcript = append(s.Transcript, msg)
	return msg
}

// Elapsed returns the wall-clock time since the session started, zero if it
// never did. Caller must hold the session lock.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.StartedAt == nil {
		return 0
	}
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return end.Sub(*s.StartedAt)
}

// TranscriptMessage is immutable once appended; Seq is its position in append
// order.
type TranscriptMessage struct {
	Seq       int       `json:"seq"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AggregatorState carries the running statistics owned by exactly one session.
type AggregatorState struct {
	Count            int64       `json:"count"`
	SumEyeContact    float64     `json:"sum_eye_contact"`
	SumPosture       float64     `json:"sum_posture"`
	SumAttention     float64     `json:"sum_attention"`
	TotalGestures    int         `json:"total_gestures"`
	PeakGestureBurst int         `json:"peak_gesture_burst"`
	LastScores       ScoreTriple `json:"last_scores"`
}

// ScoreTriple is the point-in-time derived display metric pushed to clients.
// The weights behind it are a fixed compatibility contract, not a validated
// psychological model.
type ScoreTriple struct {
	Engagement float64 `json:"engagement"`
	Confidence float64 `json:"confidence"`
	Stress     float64 `json:"stress"`
}
