package entity

import "time"

// CandidateProfile is the structured result of parsing an uploaded CV.
// It is attached at most once, before the session starts, and is immutable
// afterwards.
type CandidateProfile struct {
	Filename   string            `json:"filename"`
	Content    string            `json:"content"`
	Skills     []string          `json:"skills"`
	Education  []string          `json:"education"`
	Experience []string          `json:"experience"`
	Contact    map[string]string `json:"contact_info"`
	ParsedAt   time.Time         `json:"parsed_at"`
}
