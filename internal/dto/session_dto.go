package dto

import (
	"time"

	"ai-interview-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"omitempty,min=1,max=180"`
	TotalQuestions  int `json:"total_questions" validate:"omitempty,min=1,max=50"`
}

type CreateSessionResponse struct {
	SessionId          uuid.UUID `json:"session_id"`
	Status             string    `json:"status"`
	MaxDurationSeconds int       `json:"max_duration_seconds"`
	TotalQuestions     int       `json:"total_questions"`
}

type AttachProfileResponse struct {
	Message           string `json:"message"`
	SkillsFound       int    `json:"skills_found"`
	EducationEntries  int    `json:"education_entries"`
	ExperienceEntries int    `json:"experience_entries"`
}

type StartSessionResponse struct {
	Message         string   `json:"message"`
	InitialQuestion string   `json:"initial_question"`
	TotalQuestions  int      `json:"total_questions"`
	Questions       []string `json:"questions"`
}

type GetSessionResponse struct {
	SessionId          uuid.UUID `json:"session_id"`
	Status             string    `json:"status"`
	CVUploaded         bool      `json:"cv_uploaded"`
	MessageCount       int       `json:"message_count"`
	MaxDurationSeconds int       `json:"max_duration_seconds"`
	InitialQuestion    *string   `json:"initial_question,omitempty"`
	Questions          []string  `json:"questions"`
	TotalQuestions     int       `json:"total_questions"`
	QuestionsAsked     int       `json:"questions_asked"`
}

type SessionStatusResponse struct {
	SessionId            uuid.UUID `json:"session_id"`
	Status               string    `json:"status"`
	TimeRemainingSeconds int       `json:"time_remaining_seconds"`
	MessageCount         int       `json:"message_count"`
	ObservationCount     int64     `json:"behavior_metrics_count"`
}

type PostMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=interviewer candidate"`
	Content string `json:"content" validate:"required"`
}

type PostMessageResponse struct {
	Message    string `json:"message"`
	AIResponse string `json:"ai_response,omitempty"`
}

type TranscriptMessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SummaryDTO struct {
	TotalMessages   int                    `json:"total_messages"`
	CVMatchScore    *float64               `json:"cv_match_score,omitempty"`
	BehaviorSummary entity.BehaviorSummary `json:"behavior_summary"`
	Recommendations []string               `json:"recommendations"`
}

type EndSessionResponse struct {
	Message         string                 `json:"message"`
	DurationMinutes float64                `json:"duration_minutes"`
	Summary         SummaryDTO             `json:"summary"`
	Transcript      []TranscriptMessageDTO `json:"transcript"`
}

// SessionEndedMessage is the payload published on the internal bus when a
// session reaches its terminal phase; the archive consumer persists it.
type SessionEndedMessage struct {
	SessionId uuid.UUID             `json:"session_id"`
	CreatedAt time.Time             `json:"created_at"`
	EndedAt   time.Time             `json:"ended_at"`
	Degraded  bool                  `json:"degraded"`
	Summary   entity.SessionSummary `json:"summary"`
}
