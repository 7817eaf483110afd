package websocket

import (
	"context"
	"encoding/base64"
	"math/rand"
	"testing"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/internal/service"
	"ai-interview-be/pkg/cvparse"
	"ai-interview-be/pkg/interview/dialogue"
	"ai-interview-be/pkg/speech"
	"ai-interview-be/pkg/vision"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoGenerator struct{}

func (echoGenerator) GenerateReply(ctx context.Context, profile *entity.CandidateProfile, history []entity.TranscriptMessage, userMessage string) (string, error) {
	return "And what else?", nil
}

type frameSink struct {
	frames []interface{}
}

func (s *frameSink) send(v interface{}) {
	s.frames = append(s.frames, v)
}

func newProcessorWithSession(t *testing.T) (*FrameProcessor, uuid.UUID) {
	t.Helper()

	sessions := service.NewSessionService(
		memory.NewSessionRepository(),
		cvparse.NewParser(),
		dialogue.NewController(echoGenerator{}, time.Second),
		nil,
		nil,
		logger.NewNopLogger(),
		15,
		8,
	)
	resp, err := sessions.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	_, err = sessions.Start(context.Background(), resp.SessionId)
	require.NoError(t, err)

	processor := NewFrameProcessor(
		sessions,
		speech.NewSimpleService(),
		vision.NewSimpleService(rand.New(rand.NewSource(7))),
		logger.NewNopLogger(),
	)
	return processor, resp.SessionId
}

func TestProcessPing(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	processor.Process(context.Background(), id, []byte(`{"type":"ping"}`), sink.send)

	require.Len(t, sink.frames, 1)
	assert.Equal(t, dto.PongFrame{Type: constant.FrameTypePong}, sink.frames[0])
}

func TestProcessMalformedFrame(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	processor.Process(context.Background(), id, []byte(`{not json`), sink.send)

	require.Len(t, sink.frames, 1)
	errFrame, ok := sink.frames[0].(dto.ErrorFrame)
	require.True(t, ok)
	assert.Equal(t, constant.FrameTypeError, errFrame.Type)
}

func TestProcessUnknownFrameType(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	processor.Process(context.Background(), id, []byte(`{"type":"telemetry"}`), sink.send)

	require.Len(t, sink.frames, 1)
	errFrame, ok := sink.frames[0].(dto.ErrorFrame)
	require.True(t, ok)
	assert.Contains(t, errFrame.Message, "telemetry")
}

func TestProcessAudioEmitsTranscriptionThenReply(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	payload := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	processor.Process(context.Background(), id, []byte(`{"type":"audio","data":"`+payload+`"}`), sink.send)

	require.Len(t, sink.frames, 2)

	transcription, ok := sink.frames[0].(dto.TranscriptionFrame)
	require.True(t, ok)
	assert.Equal(t, speech.PlaceholderTranscription, transcription.Text)

	reply, ok := sink.frames[1].(dto.AIResponseFrame)
	require.True(t, ok)
	assert.Equal(t, "And what else?", reply.Text)
	assert.NotEmpty(t, reply.Audio)
}

func TestProcessAudioBadBase64(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	processor.Process(context.Background(), id, []byte(`{"type":"audio","data":"%%%"}`), sink.send)

	require.Len(t, sink.frames, 1)
	_, ok := sink.frames[0].(dto.ErrorFrame)
	assert.True(t, ok)
}

func TestProcessVideoEmitsMetrics(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	sink := &frameSink{}

	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	processor.Process(context.Background(), id, []byte(`{"type":"video","data":"`+payload+`"}`), sink.send)

	require.Len(t, sink.frames, 1)
	metricsFrame, ok := sink.frames[0].(dto.VisionMetricsFrame)
	require.True(t, ok)
	assert.Equal(t, constant.FrameTypeVisionMetrics, metricsFrame.Type)
	assert.Greater(t, metricsFrame.Metrics.EyeContactScore, 0.0)
}

func TestProcessFramesOnUnknownSession(t *testing.T) {
	processor, _ := newProcessorWithSession(t)
	sink := &frameSink{}

	payload := base64.StdEncoding.EncodeToString([]byte("pcm"))
	processor.Process(context.Background(), uuid.New(), []byte(`{"type":"audio","data":"`+payload+`"}`), sink.send)

	// The frame is rejected before any collaborator runs.
	require.Len(t, sink.frames, 1)
	_, ok := sink.frames[0].(dto.ErrorFrame)
	assert.True(t, ok)
}

func TestProcessFramesAfterSessionEnded(t *testing.T) {
	processor, id := newProcessorWithSession(t)
	_, err := processor.sessions.End(context.Background(), id)
	require.NoError(t, err)

	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))
	inbound := []string{
		`{"type":"audio","data":"` + payload + `"}`,
		`{"type":"video","data":"` + payload + `"}`,
		`{"type":"ping"}`,
	}

	// Every frame kind, ping included, gets a single error frame with no
	// transcription or metrics emitted.
	for _, raw := range inbound {
		sink := &frameSink{}
		processor.Process(context.Background(), id, []byte(raw), sink.send)

		require.Len(t, sink.frames, 1, raw)
		_, ok := sink.frames[0].(dto.ErrorFrame)
		assert.True(t, ok, raw)
	}
}
