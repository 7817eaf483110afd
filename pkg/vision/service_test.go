package vision

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFrameRanges(t *testing.T) {
	svc := NewSimpleService(rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		obs, err := svc.AnalyzeFrame(context.Background(), []byte("frame"))
		require.NoError(t, err)

		assert.True(t, obs.FaceDetected)
		assert.GreaterOrEqual(t, obs.EyeContactScore, 0.6)
		assert.LessOrEqual(t, obs.EyeContactScore, 0.9)
		assert.GreaterOrEqual(t, obs.PostureScore, 0.7)
		assert.LessOrEqual(t, obs.PostureScore, 0.95)
		assert.GreaterOrEqual(t, obs.AttentionScore, 0.65)
		assert.LessOrEqual(t, obs.AttentionScore, 0.85)
		assert.GreaterOrEqual(t, obs.GestureDelta, 0)
		assert.LessOrEqual(t, obs.GestureDelta, 3)
		assert.False(t, obs.Timestamp.IsZero())
	}
}

func TestSeededSequencesMatch(t *testing.T) {
	a := NewSimpleService(rand.New(rand.NewSource(42)))
	b := NewSimpleService(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		obsA, err := a.AnalyzeFrame(context.Background(), nil)
		require.NoError(t, err)
		obsB, err := b.AnalyzeFrame(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, obsA.EyeContactScore, obsB.EyeContactScore)
		assert.Equal(t, obsA.GestureDelta, obsB.GestureDelta)
	}
}
