package metrics

import (
	"math"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
)

// Observe folds one behavior observation into the running state and
// returns the live score triple derived from it.
func Observe(state *entity.AggregatorState, obs *entity.BehaviorObservation) entity.ScoreTriple {
	state.Count++
	state.SumEyeContact += obs.EyeContactScore
	state.SumPosture += obs.PostureScore
	state.SumAttention += obs.AttentionScore
	state.TotalGestures += obs.GestureDelta
	if obs.GestureDelta > state.PeakGestureBurst {
		state.PeakGestureBurst = obs.GestureDelta
	}

	confidence := clamp01(0.6*obs.EyeContactScore + 0.4*obs.PostureScore)
	scores := entity.ScoreTriple{
		Engagement: clamp01(obs.AttentionScore),
		Confidence: confidence,
		Stress:     clamp01(1 - 0.8*confidence),
	}
	state.LastScores = scores
	return scores
}

// Summarize reduces the accumulated state to the behavior summary of a
// finished session. With no observations every average is zero and the
// engagement level is Low.
func Summarize(state *entity.AggregatorState) entity.BehaviorSummary {
	var avgEye, avgPosture, avgAttention float64
	if state.Count > 0 {
		n := float64(state.Count)
		avgEye = state.SumEyeContact / n
		avgPosture = state.SumPosture / n
		avgAttention = state.SumAttention / n
	}

	return entity.BehaviorSummary{
		AverageEyeContactScore: round2(avgEye),
		AveragePostureScore:    round2(avgPosture),
		AverageAttentionScore:  round2(avgAttention),
		TotalGestures:          state.TotalGestures,
		EngagementLevel:        engagementLevel(avgAttention),
	}
}

func engagementLevel(avgAttention float64) string {
	switch {
	case avgAttention < 0.4:
		return constant.EngagementLow
	case avgAttention < 0.7:
		return constant.EngagementMedium
	default:
		return constant.EngagementHigh
	}
}

// Recommendations produces coaching hints from the finished session's
// numbers. When nothing falls below a threshold a single positive note is
// returned.
func Recommendations(matchScore *float64, behavior entity.BehaviorSummary, candidateMessages int) []string {
	var recs []string
	if matchScore != nil && *matchScore < 50 {
		recs = append(recs, "Consider highlighting more relevant skills during the interview")
	}
	if behavior.AverageEyeContactScore < 0.5 {
		recs = append(recs, "Maintain better eye contact with the camera")
	}
	if behavior.TotalGestures < 5 {
		recs = append(recs, "Use more hand gestures to appear more engaging")
	}
	if candidateMessages < 5 {
		recs = append(recs, "Provide more detailed responses to interview questions")
	}
	if len(recs) == 0 {
		recs = append(recs, "Great interview performance! Keep up the good work.")
	}
	return recs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
