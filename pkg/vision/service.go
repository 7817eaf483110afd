package vision

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ai-interview-be/internal/entity"
)

// Service analyzes video frames into behavior observations.
type Service interface {
	AnalyzeFrame(ctx context.Context, frame []byte) (*entity.BehaviorObservation, error)
	Available() bool
	Status() map[string]bool
}

// simpleService emits realistic-looking synthetic observations. The rand
// source is injectable so tests can pin the sequence.
type simpleService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimpleService(rng *rand.Rand) Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &simpleService{rng: rng}
}

func (s *simpleService) AnalyzeFrame(ctx context.Context, frame []byte) (*entity.BehaviorObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &entity.BehaviorObservation{
		FaceDetected:    true,
		EyeContactScore: uniform(s.rng, 0.6, 0.9),
		PostureScore:    uniform(s.rng, 0.7, 0.95),
		AttentionScore:  uniform(s.rng, 0.65, 0.85),
		GestureDelta:    s.rng.Intn(4),
		Timestamp:       time.Now(),
	}, nil
}

func (s *simpleService) Available() bool {
	return false
}

func (s *simpleService) Status() map[string]bool {
	return map[string]bool{
		"face_tracking_available": false,
		"fully_functional":        false,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
