package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/service"
	"ai-interview-be/pkg/speech"
	"ai-interview-be/pkg/vision"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// FrameProcessor routes one inbound frame to its collaborator chain and
// emits the resulting outbound frames through send. It never closes the
// connection itself; bad frames get an error frame and processing
// continues. Frames for unknown or ended sessions are answered with an
// error frame before any collaborator is called.
type FrameProcessor struct {
	sessions service.ISessionService
	speech   speech.Service
	vision   vision.Service
	log      logger.ILogger
}

func NewFrameProcessor(sessions service.ISessionService, speechSvc speech.Service, visionSvc vision.Service, log logger.ILogger) *FrameProcessor {
	return &FrameProcessor{
		sessions: sessions,
		speech:   speechSvc,
		vision:   visionSvc,
		log:      log,
	}
}

func (p *FrameProcessor) Process(ctx context.Context, sessionID uuid.UUID, raw []byte, send func(v interface{})) {
	phase, err := p.sessions.Phase(ctx, sessionID)
	if err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: err.Error()})
		return
	}
	if phase == constant.PhaseEnded {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "session has ended"})
		return
	}

	var frame dto.InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "malformed frame"})
		return
	}

	switch frame.Type {
	case constant.FrameTypePing:
		send(dto.PongFrame{Type: constant.FrameTypePong})
	case constant.FrameTypeAudio:
		p.processAudio(ctx, sessionID, frame.Data, send)
	case constant.FrameTypeVideo:
		p.processVideo(ctx, sessionID, frame.Data, send)
	default:
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "unknown frame type: " + frame.Type})
	}
}

func (p *FrameProcessor) processAudio(ctx context.Context, sessionID uuid.UUID, data string, send func(v interface{})) {
	audio, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "invalid audio payload"})
		return
	}

	text, err := p.speech.SpeechToText(ctx, audio)
	if err != nil {
		p.log.Warn("Realtime", "speech-to-text failed", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "speech recognition failed"})
		return
	}
	send(dto.TranscriptionFrame{Type: constant.FrameTypeTranscription, Text: text})

	reply, err := p.sessions.SubmitUtterance(ctx, sessionID, text)
	if err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: err.Error()})
		return
	}

	response := dto.AIResponseFrame{Type: constant.FrameTypeAIResponse, Text: reply}
	if synthesized, err := p.speech.TextToSpeech(ctx, reply); err == nil && len(synthesized) > 0 {
		response.Audio = base64.StdEncoding.EncodeToString(synthesized)
	}
	send(response)
}

func (p *FrameProcessor) processVideo(ctx context.Context, sessionID uuid.UUID, data string, send func(v interface{})) {
	image, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "invalid video payload"})
		return
	}

	obs, err := p.vision.AnalyzeFrame(ctx, image)
	if err != nil {
		p.log.Warn("Realtime", "vision analysis failed", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: "vision analysis failed"})
		return
	}

	if _, err := p.sessions.RecordObservation(ctx, sessionID, obs); err != nil {
		send(dto.ErrorFrame{Type: constant.FrameTypeError, Message: err.Error()})
		return
	}

	send(dto.VisionMetricsFrame{
		Type: constant.FrameTypeVisionMetrics,
		Metrics: dto.VisionMetricsDTO{
			EyeContactScore: obs.EyeContactScore,
			PostureScore:    obs.PostureScore,
			AttentionScore:  obs.AttentionScore,
			GestureCount:    obs.GestureDelta,
		},
	})
}

// ServeWs attaches a websocket connection to the hub and runs its pumps.
// The read pump runs on the caller's goroutine.
func ServeWs(hub *Hub, processor *FrameProcessor, c *websocket.Conn, sessionID uuid.UUID) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		done:      make(chan struct{}),
		processor: processor,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
