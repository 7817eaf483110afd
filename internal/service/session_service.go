package service

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/apperror"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/pkg/cvparse"
	"ai-interview-be/pkg/events"
	"ai-interview-be/pkg/interview/dialogue"
	"ai-interview-be/pkg/interview/metrics"
	"ai-interview-be/pkg/interviewer"

	"github.com/google/uuid"
)

// IEventPublisher pushes lifecycle events to the external bus. A nil
// publisher disables lifecycle events entirely.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ChannelCloser shuts the realtime channel of a session, if one is open.
type ChannelCloser interface {
	CloseSession(sessionID uuid.UUID)
}

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	AttachProfile(ctx context.Context, id uuid.UUID, filename string, content []byte) (*dto.AttachProfileResponse, error)
	Start(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.GetSessionResponse, error)
	Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error)
	PostMessage(ctx context.Context, id uuid.UUID, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error)
	End(ctx context.Context, id uuid.UUID) (*dto.EndSessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Realtime channel entry points.
	SubmitUtterance(ctx context.Context, id uuid.UUID, text string) (string, error)
	RecordObservation(ctx context.Context, id uuid.UUID, obs *entity.BehaviorObservation) (entity.ScoreTriple, error)
	Phase(ctx context.Context, id uuid.UUID) (string, error)

	SetChannelCloser(closer ChannelCloser)
}

type sessionService struct {
	sessions         *memory.SessionRepository
	parser           *cvparse.Parser
	dialogue         *dialogue.Controller
	publisherService IPublisherService
	eventPublisher   IEventPublisher
	channelCloser    ChannelCloser
	log              logger.ILogger

	defaultDurationMinutes int
	defaultTotalQuestions  int

	timers sync.Map // uuid.UUID -> *time.Timer
}

func NewSessionService(
	sessions *memory.SessionRepository,
	parser *cvparse.Parser,
	dialogueController *dialogue.Controller,
	publisherService IPublisherService,
	eventPublisher IEventPublisher,
	log logger.ILogger,
	defaultDurationMinutes int,
	defaultTotalQuestions int,
) ISessionService {
	return &sessionService{
		sessions:               sessions,
		parser:                 parser,
		dialogue:               dialogueController,
		publisherService:       publisherService,
		eventPublisher:         eventPublisher,
		log:                    log,
		defaultDurationMinutes: defaultDurationMinutes,
		defaultTotalQuestions:  defaultTotalQuestions,
	}
}

// SetChannelCloser wires the realtime hub in after construction; the hub
// itself depends on this service, so the cycle is broken here.
func (s *sessionService) SetChannelCloser(closer ChannelCloser) {
	s.channelCloser = closer
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = s.defaultDurationMinutes
	}
	durationSeconds, ok := constant.AllowedDurationSeconds[durationMinutes]
	if !ok {
		durationSeconds = constant.DefaultMaxDurationSeconds
	}

	totalQuestions := req.TotalQuestions
	if totalQuestions == 0 {
		totalQuestions = s.defaultTotalQuestions
	}
	if totalQuestions < constant.MinTotalQuestions {
		totalQuestions = constant.MinTotalQuestions
	}
	if totalQuestions > constant.MaxTotalQuestions {
		totalQuestions = constant.MaxTotalQuestions
	}

	sess := &entity.Session{
		Id:                 uuid.New(),
		Phase:              constant.PhaseCreated,
		CreatedAt:          time.Now(),
		MaxDurationSeconds: durationSeconds,
		TotalQuestions:     totalQuestions,
	}
	s.sessions.Save(sess)

	s.log.Info("Session", "session created", map[string]interface{}{"session_id": sess.Id})
	s.publishEvent(ctx, constant.EventSessionCreated, sess.Id, nil)

	return &dto.CreateSessionResponse{
		SessionId:          sess.Id,
		Status:             sess.Phase,
		MaxDurationSeconds: sess.MaxDurationSeconds,
		TotalQuestions:     sess.TotalQuestions,
	}, nil
}

func (s *sessionService) AttachProfile(ctx context.Context, id uuid.UUID, filename string, content []byte) (*dto.AttachProfileResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	profile, err := s.parser.Parse(filename, content)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != constant.PhaseCreated {
		return nil, apperror.InvalidState("cv can only be attached before the interview starts")
	}
	sess.Profile = profile

	return &dto.AttachProfileResponse{
		Message:           "CV uploaded and parsed successfully",
		SkillsFound:       len(profile.Skills),
		EducationEntries:  len(profile.Education),
		ExperienceEntries: len(profile.Experience),
	}, nil
}

func (s *sessionService) Start(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != constant.PhaseCreated {
		return nil, apperror.InvalidState("session has already been started")
	}

	now := time.Now()
	sess.Phase = constant.PhaseActive
	sess.StartedAt = &now
	sess.Questions = dialogue.PlanQuestions(sess.Profile, sess.TotalQuestions)

	initialQuestion := s.dialogue.FirstQuestion(sess)
	sess.AppendMessage(constant.RoleInterviewer, initialQuestion, now)

	s.armTimer(sess.Id, time.Duration(sess.MaxDurationSeconds)*time.Second)

	s.log.Info("Session", "session started", map[string]interface{}{"session_id": sess.Id})
	s.publishEvent(ctx, constant.EventSessionStarted, sess.Id, map[string]interface{}{
		"max_duration_seconds": sess.MaxDurationSeconds,
		"total_questions":      sess.TotalQuestions,
	})

	return &dto.StartSessionResponse{
		Message:         "Interview started",
		InitialQuestion: initialQuestion,
		TotalQuestions:  sess.TotalQuestions,
		Questions:       append([]string(nil), sess.Questions...),
	}, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.GetSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	resp := &dto.GetSessionResponse{
		SessionId:          sess.Id,
		Status:             sess.Phase,
		CVUploaded:         sess.Profile != nil,
		MessageCount:       len(sess.Transcript),
		MaxDurationSeconds: sess.MaxDurationSeconds,
		Questions:          append([]string(nil), sess.Questions...),
		TotalQuestions:     sess.TotalQuestions,
		QuestionsAsked:     sess.QuestionsAsked,
	}
	if len(sess.Transcript) > 0 && sess.Transcript[0].Role == constant.RoleInterviewer {
		first := sess.Transcript[0].Content
		resp.InitialQuestion = &first
	}
	return resp, nil
}

func (s *sessionService) Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	remaining := 0
	if sess.Phase != constant.PhaseEnded {
		remaining = sess.MaxDurationSeconds - int(sess.Elapsed(time.Now()).Seconds())
		if remaining < 0 {
			remaining = 0
		}
	}

	return &dto.SessionStatusResponse{
		SessionId:            sess.Id,
		Status:               sess.Phase,
		TimeRemainingSeconds: remaining,
		MessageCount:         len(sess.Transcript),
		ObservationCount:     sess.Stats.Count,
	}, nil
}

func (s *sessionService) PostMessage(ctx context.Context, id uuid.UUID, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error) {
	if req.Role == constant.RoleCandidate {
		reply, err := s.SubmitUtterance(ctx, id, req.Content)
		if err != nil {
			return nil, err
		}
		return &dto.PostMessageResponse{
			Message:    "Message recorded",
			AIResponse: reply,
		}, nil
	}

	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != constant.PhaseActive {
		return nil, apperror.InvalidState("session is not active")
	}
	sess.AppendMessage(constant.RoleInterviewer, req.Content, time.Now())

	return &dto.PostMessageResponse{Message: "Message recorded"}, nil
}

// SubmitUtterance appends the candidate's words and produces the
// interviewer's answer in one locked step, so transcript order always
// matches arrival order.
func (s *sessionService) SubmitUtterance(ctx context.Context, id uuid.UUID, text string) (string, error) {
	sess, err := s.find(id)
	if err != nil {
		return "", err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != constant.PhaseActive {
		return "", apperror.InvalidState("session is not active")
	}

	now := time.Now()
	sess.AppendMessage(constant.RoleCandidate, text, now)
	reply := s.dialogue.Reply(ctx, sess, text)
	sess.AppendMessage(constant.RoleInterviewer, reply, time.Now())

	return reply, nil
}

// RecordObservation folds a vision observation into the session's running
// statistics and returns the live scores.
func (s *sessionService) RecordObservation(ctx context.Context, id uuid.UUID, obs *entity.BehaviorObservation) (entity.ScoreTriple, error) {
	sess, err := s.find(id)
	if err != nil {
		return entity.ScoreTriple{}, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != constant.PhaseActive {
		return entity.ScoreTriple{}, apperror.InvalidState("session is not active")
	}

	sess.LatestObservation = obs
	return metrics.Observe(&sess.Stats, obs), nil
}

func (s *sessionService) End(ctx context.Context, id uuid.UUID) (*dto.EndSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	summary := s.endLocked(ctx, sess)
	resp := buildEndResponse(sess, summary)
	sess.Unlock()

	return resp, nil
}

// endLocked is the single terminal transition. The duration timer and the
// HTTP end operation both land here; whoever arrives second gets the
// already stored summary. Caller must hold the session lock.
func (s *sessionService) endLocked(ctx context.Context, sess *entity.Session) *entity.SessionSummary {
	if sess.Summary != nil {
		return sess.Summary
	}

	now := time.Now()
	sess.Phase = constant.PhaseEnded
	sess.EndedAt = &now

	elapsed := sess.Elapsed(now)
	budget := time.Duration(sess.MaxDurationSeconds) * time.Second
	if elapsed > budget {
		elapsed = budget
	}

	matchScore := interviewer.MatchScore(sess.Profile, sess.Transcript)
	behavior := metrics.Summarize(&sess.Stats)

	candidateMessages := 0
	for _, msg := range sess.Transcript {
		if msg.Role == constant.RoleCandidate {
			candidateMessages++
		}
	}

	sess.Summary = &entity.SessionSummary{
		DurationMinutes: math.Round(elapsed.Minutes()*10) / 10,
		TotalMessages:   len(sess.Transcript) / 2,
		CVMatchScore:    matchScore,
		Behavior:        behavior,
		Recommendations: metrics.Recommendations(matchScore, behavior, candidateMessages),
		Transcript:      append([]entity.TranscriptMessage(nil), sess.Transcript...),
	}

	s.disarmTimer(sess.Id)
	if s.channelCloser != nil {
		s.channelCloser.CloseSession(sess.Id)
	}

	s.log.Info("Session", "session ended", map[string]interface{}{"session_id": sess.Id, "degraded": sess.Degraded})
	s.publishSessionEnded(ctx, sess)
	s.publishEvent(ctx, constant.EventSessionEnded, sess.Id, map[string]interface{}{
		"degraded": sess.Degraded,
	})

	return sess.Summary
}

func buildEndResponse(sess *entity.Session, summary *entity.SessionSummary) *dto.EndSessionResponse {
	transcript := make([]dto.TranscriptMessageDTO, 0, len(summary.Transcript))
	for _, msg := range summary.Transcript {
		transcript = append(transcript, dto.TranscriptMessageDTO{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}

	return &dto.EndSessionResponse{
		Message:         "Interview ended",
		DurationMinutes: summary.DurationMinutes,
		Summary: dto.SummaryDTO{
			TotalMessages:   summary.TotalMessages,
			CVMatchScore:    summary.CVMatchScore,
			BehaviorSummary: summary.Behavior,
			Recommendations: append([]string(nil), summary.Recommendations...),
		},
		Transcript: transcript,
	}
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(id); err != nil {
		return err
	}

	s.disarmTimer(id)
	if s.channelCloser != nil {
		s.channelCloser.CloseSession(id)
	}
	s.sessions.Delete(id)

	s.log.Info("Session", "session deleted", map[string]interface{}{"session_id": id})
	s.publishEvent(ctx, constant.EventSessionDeleted, id, nil)
	return nil
}

// Phase reports the session's lifecycle phase, letting the realtime
// channel reject frames for ended sessions without touching collaborators.
func (s *sessionService) Phase(ctx context.Context, id uuid.UUID) (string, error) {
	sess, err := s.find(id)
	if err != nil {
		return "", err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Phase, nil
}

func (s *sessionService) find(id uuid.UUID) (*entity.Session, error) {
	sess, found := s.sessions.Get(id)
	if !found {
		return nil, apperror.NotFound("session not found")
	}
	return sess, nil
}

func (s *sessionService) armTimer(id uuid.UUID, d time.Duration) {
	timer := time.AfterFunc(d, func() {
		if _, err := s.End(context.Background(), id); err != nil {
			s.log.Warn("Session", "timer-driven end failed", map[string]interface{}{"session_id": id, "error": err.Error()})
		}
	})
	if prev, loaded := s.timers.Swap(id, timer); loaded {
		prev.(*time.Timer).Stop()
	}
}

func (s *sessionService) disarmTimer(id uuid.UUID) {
	if timer, loaded := s.timers.LoadAndDelete(id); loaded {
		timer.(*time.Timer).Stop()
	}
}

func (s *sessionService) publishSessionEnded(ctx context.Context, sess *entity.Session) {
	if s.publisherService == nil {
		return
	}

	payload := dto.SessionEndedMessage{
		SessionId: sess.Id,
		CreatedAt: sess.CreatedAt,
		EndedAt:   *sess.EndedAt,
		Degraded:  sess.Degraded,
		Summary:   *sess.Summary,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("Session", "failed to marshal session ended message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, data); err != nil {
		s.log.Error("Session", "failed to publish session ended message", map[string]interface{}{"error": err.Error()})
	}
}

// publishEvent pushes a lifecycle event to the external bus, best effort.
func (s *sessionService) publishEvent(ctx context.Context, code string, id uuid.UUID, extra map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewSessionEvent(code, id.String(), extra)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("Session", "failed to publish lifecycle event", map[string]interface{}{"event": code, "error": err.Error()})
	}
}
