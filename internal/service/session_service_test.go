package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/apperror"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/pkg/cvparse"
	"ai-interview-be/pkg/interview/dialogue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	reply string
	err   error
}

func (g *scriptedGenerator) GenerateReply(ctx context.Context, profile *entity.CandidateProfile, history []entity.TranscriptMessage, userMessage string) (string, error) {
	return g.reply, g.err
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestService(gen dialogue.ResponseGenerator) (ISessionService, *capturingPublisher) {
	if gen == nil {
		gen = &scriptedGenerator{reply: "Generated follow-up question?"}
	}
	pub := &capturingPublisher{}
	svc := NewSessionService(
		memory.NewSessionRepository(),
		cvparse.NewParser(),
		dialogue.NewController(gen, time.Second),
		pub,
		nil,
		logger.NewNopLogger(),
		15,
		8,
	)
	return svc, pub
}

func createSession(t *testing.T, svc ISessionService, req *dto.CreateSessionRequest) uuid.UUID {
	t.Helper()
	if req == nil {
		req = &dto.CreateSessionRequest{}
	}
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return resp.SessionId
}

func startSession(t *testing.T, svc ISessionService, req *dto.CreateSessionRequest) uuid.UUID {
	t.Helper()
	id := createSession(t, svc, req)
	_, err := svc.Start(context.Background(), id)
	require.NoError(t, err)
	return id
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	assert.Equal(t, constant.PhaseCreated, resp.Status)
	assert.Equal(t, 900, resp.MaxDurationSeconds)
	assert.Equal(t, 8, resp.TotalQuestions)
}

func TestCreateDurationPresets(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.Create(context.Background(), &dto.CreateSessionRequest{DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, 1800, resp.MaxDurationSeconds)

	// Unlisted durations fall back to the 15 minute budget.
	resp, err = svc.Create(context.Background(), &dto.CreateSessionRequest{DurationMinutes: 45})
	require.NoError(t, err)
	assert.Equal(t, 900, resp.MaxDurationSeconds)
}

func TestCreateClampsQuestionBudget(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.Create(context.Background(), &dto.CreateSessionRequest{TotalQuestions: 1})
	require.NoError(t, err)
	assert.Equal(t, constant.MinTotalQuestions, resp.TotalQuestions)

	resp, err = svc.Create(context.Background(), &dto.CreateSessionRequest{TotalQuestions: 50})
	require.NoError(t, err)
	assert.Equal(t, constant.MaxTotalQuestions, resp.TotalQuestions)
}

func TestAttachProfileOnlyBeforeStart(t *testing.T) {
	svc, _ := newTestService(nil)
	id := createSession(t, svc, nil)

	resp, err := svc.AttachProfile(context.Background(), id, "resume.txt", []byte("Skills: Python, Docker and AWS experience at a company"))
	require.NoError(t, err)
	assert.Greater(t, resp.SkillsFound, 0)

	_, err = svc.Start(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.AttachProfile(context.Background(), id, "resume.txt", []byte("Skills: Python"))
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestStartPushesInitialQuestion(t *testing.T) {
	svc, _ := newTestService(nil)
	id := createSession(t, svc, nil)

	resp, err := svc.Start(context.Background(), id)
	require.NoError(t, err)

	assert.Contains(t, resp.InitialQuestion, constant.InterviewIntroPrefix)
	assert.Contains(t, resp.InitialQuestion, constant.GenericQuestions[0])
	assert.Len(t, resp.Questions, 8)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constant.PhaseActive, got.Status)
	assert.Equal(t, 1, got.MessageCount)
	// The opener does not consume the question budget.
	assert.Zero(t, got.QuestionsAsked)
	require.NotNil(t, got.InitialQuestion)
}

func TestStartTwiceFails(t *testing.T) {
	svc, _ := newTestService(nil)
	id := startSession(t, svc, nil)

	_, err := svc.Start(context.Background(), id)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestSubmitUtteranceAppendsPair(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{reply: "Why Go?"})
	id := startSession(t, svc, nil)

	reply, err := svc.SubmitUtterance(context.Background(), id, "I build services in Go.")
	require.NoError(t, err)
	assert.Equal(t, "Why Go?", reply)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	// Initial question plus the candidate/interviewer pair.
	assert.Equal(t, 3, got.MessageCount)
	assert.Equal(t, 1, got.QuestionsAsked)
}

func TestSubmitUtteranceRequiresActiveSession(t *testing.T) {
	svc, _ := newTestService(nil)
	id := createSession(t, svc, nil)

	_, err := svc.SubmitUtterance(context.Background(), id, "hello")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestSubmitUtteranceUnknownSession(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.SubmitUtterance(context.Background(), uuid.New(), "hello")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGeneratorFailureFallsBackToPlan(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{err: errors.New("llm down")})
	id := startSession(t, svc, nil)

	reply, err := svc.SubmitUtterance(context.Background(), id, "answer one")
	require.NoError(t, err)
	assert.Equal(t, constant.GenericQuestions[1], reply)

	end, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, end.Transcript)
}

func TestClosingReplyAfterBudget(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{reply: "Next?"})
	id := startSession(t, svc, &dto.CreateSessionRequest{TotalQuestions: 3})

	// A budget of 3 yields three generated replies beyond the opener.
	for _, answer := range []string{"one", "two", "three"} {
		reply, err := svc.SubmitUtterance(context.Background(), id, answer)
		require.NoError(t, err)
		assert.Equal(t, "Next?", reply)
	}

	reply, err := svc.SubmitUtterance(context.Background(), id, "four")
	require.NoError(t, err)
	assert.Equal(t, constant.ClosingReply, reply)

	// The closing reply repeats without consuming questions.
	reply, err = svc.SubmitUtterance(context.Background(), id, "five")
	require.NoError(t, err)
	assert.Equal(t, constant.ClosingReply, reply)
}

func TestQuestionBudgetSpansFullInterview(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{reply: "Next question?"})
	id := startSession(t, svc, nil)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, got.QuestionsAsked)

	for i := 0; i < 8; i++ {
		reply, err := svc.SubmitUtterance(context.Background(), id, "an answer")
		require.NoError(t, err)
		assert.Equal(t, "Next question?", reply)
	}

	got, err = svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 8, got.QuestionsAsked)

	reply, err := svc.SubmitUtterance(context.Background(), id, "anything else")
	require.NoError(t, err)
	assert.Equal(t, constant.ClosingReply, reply)
}

func TestPostMessageInterviewerAppendsOnly(t *testing.T) {
	svc, _ := newTestService(nil)
	id := startSession(t, svc, nil)

	resp, err := svc.PostMessage(context.Background(), id, &dto.PostMessageRequest{
		Role:    constant.RoleInterviewer,
		Content: "Let us move on.",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AIResponse)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MessageCount)
}

func TestPostMessageCandidateGetsReply(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{reply: "Tell me more."})
	id := startSession(t, svc, nil)

	resp, err := svc.PostMessage(context.Background(), id, &dto.PostMessageRequest{
		Role:    constant.RoleCandidate,
		Content: "I led a migration project.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tell me more.", resp.AIResponse)
}

func TestRecordObservationUpdatesStatus(t *testing.T) {
	svc, _ := newTestService(nil)
	id := startSession(t, svc, nil)

	scores, err := svc.RecordObservation(context.Background(), id, &entity.BehaviorObservation{
		FaceDetected:    true,
		EyeContactScore: 0.8,
		PostureScore:    0.5,
		AttentionScore:  0.75,
		GestureDelta:    2,
		Timestamp:       time.Now(),
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, scores.Engagement, 1e-9)
	assert.InDelta(t, 0.68, scores.Confidence, 1e-9)

	status, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.ObservationCount)
	assert.Greater(t, status.TimeRemainingSeconds, 0)
}

func TestEndIsIdempotent(t *testing.T) {
	svc, pub := newTestService(&scriptedGenerator{reply: "Next?"})
	id := startSession(t, svc, nil)

	_, err := svc.SubmitUtterance(context.Background(), id, "answer")
	require.NoError(t, err)

	first, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.End(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.DurationMinutes, second.DurationMinutes)
	// Exactly one session-ended message despite two end calls.
	assert.Len(t, pub.payloads, 1)

	// transcript: initial question + 1 exchange pair = 3 entries.
	assert.Equal(t, 1, first.Summary.TotalMessages)
	assert.Len(t, first.Transcript, 3)
}

func TestEndedSessionRejectsUtterances(t *testing.T) {
	svc, _ := newTestService(nil)
	id := startSession(t, svc, nil)

	_, err := svc.End(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.SubmitUtterance(context.Background(), id, "late answer")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// The ended session stays readable.
	status, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constant.PhaseEnded, status.Status)
	assert.Zero(t, status.TimeRemainingSeconds)
}

func TestSummaryIncludesMatchScoreOnlyWithProfile(t *testing.T) {
	svc, _ := newTestService(&scriptedGenerator{reply: "Next?"})

	// Without a profile there is no match score.
	plain := startSession(t, svc, nil)
	end, err := svc.End(context.Background(), plain)
	require.NoError(t, err)
	assert.Nil(t, end.Summary.CVMatchScore)

	// With a profile the candidate's skill mentions are scored.
	id := createSession(t, svc, nil)
	_, err = svc.AttachProfile(context.Background(), id, "resume.txt", []byte("Experienced with Python and Docker at a large company"))
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.SubmitUtterance(context.Background(), id, "I mostly used Python on that team.")
	require.NoError(t, err)

	end, err = svc.End(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, end.Summary.CVMatchScore)
	assert.Greater(t, *end.Summary.CVMatchScore, 0.0)
}

func TestDeleteRemovesSession(t *testing.T) {
	svc, _ := newTestService(nil)
	id := startSession(t, svc, nil)

	require.NoError(t, svc.Delete(context.Background(), id))

	_, err := svc.Get(context.Background(), id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	err = svc.Delete(context.Background(), id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

type recordingCloser struct {
	closed []uuid.UUID
}

func (r *recordingCloser) CloseSession(id uuid.UUID) {
	r.closed = append(r.closed, id)
}

func TestEndAndDeleteCloseRealtimeChannel(t *testing.T) {
	svc, _ := newTestService(nil)
	closer := &recordingCloser{}
	svc.SetChannelCloser(closer)

	id := startSession(t, svc, nil)
	_, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, closer.closed)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id, id}, closer.closed)
}

func TestDurationTimerEndsSession(t *testing.T) {
	svc, _ := newTestService(nil)
	id := createSession(t, svc, nil)

	// Shrink the budget directly so the timer fires fast.
	impl := svc.(*sessionService)
	sess, found := impl.sessions.Get(id)
	require.True(t, found)
	sess.MaxDurationSeconds = 0

	_, err := svc.Start(context.Background(), id)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, err := svc.Status(context.Background(), id)
		return err == nil && status.Status == constant.PhaseEnded
	}, 2*time.Second, 10*time.Millisecond)
}
