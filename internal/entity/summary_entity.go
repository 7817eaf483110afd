package entity

// BehaviorSummary aggregates the whole observation stream of a session.
type BehaviorSummary struct {
	AverageEyeContactScore float64 `json:"average_eye_contact_score"`
	AveragePostureScore    float64 `json:"average_posture_score"`
	AverageAttentionScore  float64 `json:"average_attention_score"`
	TotalGestures          int     `json:"total_gestures"`
	EngagementLevel        string  `json:"engagement_level"`
}

// SessionSummary is the final report produced when a session ends. It is
// computed once and stored; recomputation would break end idempotence.
type SessionSummary struct {
	DurationMinutes float64             `json:"duration_minutes"`
	TotalMessages   int                 `json:"total_messages"`
	CVMatchScore    *float64            `json:"cv_match_score,omitempty"`
	Behavior        BehaviorSummary     `json:"behavior_summary"`
	Recommendations []string            `json:"recommendations"`
	Transcript      []TranscriptMessage `json:"transcript"`
}
