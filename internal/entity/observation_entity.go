package entity

import "time"

// BehaviorObservation is a single vision-pipeline sample. It is consumed by
// the aggregator immediately and not retained individually.
type BehaviorObservation struct {
	FaceDetected    bool      `json:"face_detected"`
	EyeContactScore float64   `json:"eye_contact_score"`
	PostureScore    float64   `json:"posture_score"`
	AttentionScore  float64   `json:"attention_score"`
	GestureDelta    int       `json:"gesture_count"`
	Timestamp       time.Time `json:"timestamp"`
}
