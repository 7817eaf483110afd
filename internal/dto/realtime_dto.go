package dto

// InboundFrame is the discriminated envelope read from the real-time channel.
// Data carries a base64 payload for audio and video frames.
type InboundFrame struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

type TranscriptionFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type AIResponseFrame struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Audio string `json:"audio,omitempty"`
}

type VisionMetricsDTO struct {
	EyeContactScore float64 `json:"eye_contact_score"`
	PostureScore    float64 `json:"posture_score"`
	AttentionScore  float64 `json:"attention_score"`
	GestureCount    int     `json:"gesture_count"`
}

type VisionMetricsFrame struct {
	Type    string           `json:"type"`
	Metrics VisionMetricsDTO `json:"metrics"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PongFrame struct {
	Type string `json:"type"`
}
