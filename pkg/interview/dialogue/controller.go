package dialogue

import (
	"context"
	"fmt"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
)

// ResponseGenerator produces the interviewer's next turn. Implementations
// may call out to an LLM and are expected to respect ctx cancellation.
type ResponseGenerator interface {
	GenerateReply(ctx context.Context, profile *entity.CandidateProfile, history []entity.TranscriptMessage, userMessage string) (string, error)
}

// Controller decides what the interviewer says next. It owns the question
// budget and the degraded-mode fallback; callers must hold the session
// lock across every method that takes a session.
type Controller struct {
	gen     ResponseGenerator
	timeout time.Duration
}

func NewController(gen ResponseGenerator, timeout time.Duration) *Controller {
	return &Controller{gen: gen, timeout: timeout}
}

// PlanQuestions builds the deterministic question plan for a session.
// Skill-tailored questions come first, one per template per leading skill,
// then the generic list, truncated to the budget.
func PlanQuestions(profile *entity.CandidateProfile, budget int) []string {
	plan := make([]string, 0, budget)

	if profile != nil {
		skills := profile.Skills
		if len(skills) > constant.PlannedSkillCount {
			skills = skills[:constant.PlannedSkillCount]
		}
		for _, skill := range skills {
			for _, tmpl := range constant.SkillQuestionTemplates {
				plan = append(plan, fmt.Sprintf(tmpl, skill))
			}
		}
	}

	plan = append(plan, constant.GenericQuestions...)

	if len(plan) > budget {
		plan = plan[:budget]
	}
	return plan
}

// Phase derives the dialogue phase from the session's state.
func Phase(sess *entity.Session) string {
	switch {
	case len(sess.Transcript) == 0:
		return constant.DialogueAwaitingFirstQuestion
	case sess.QuestionsAsked >= sess.TotalQuestions:
		return constant.DialogueExhausted
	default:
		return constant.DialogueConversing
	}
}

// FirstQuestion returns the opening planned question with the greeting
// prefix. The opener does not count against the question budget; only
// replies to candidate utterances do.
func (c *Controller) FirstQuestion(sess *entity.Session) string {
	question := constant.GenericQuestions[0]
	if len(sess.Questions) > 0 {
		question = sess.Questions[0]
	}
	return constant.InterviewIntroPrefix + question
}

// Reply produces the interviewer's response to a candidate utterance.
// Once the budget is exhausted every further utterance gets the closing
// reply without consuming a question. If the generator fails or times out
// the next unused planned question is served verbatim and the session is
// marked degraded.
func (c *Controller) Reply(ctx context.Context, sess *entity.Session, userMessage string) string {
	if sess.QuestionsAsked >= sess.TotalQuestions {
		return constant.ClosingReply
	}

	genCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.gen.GenerateReply(genCtx, sess.Profile, sess.Transcript, userMessage)
	if err != nil {
		reply = c.fallbackQuestion(sess)
		sess.Degraded = true
	}

	sess.QuestionsAsked++
	return reply
}

// fallbackQuestion picks the next planned question that has not been
// served yet. Slot 0 went out as the opener, so the counter is offset by
// one.
func (c *Controller) fallbackQuestion(sess *entity.Session) string {
	next := sess.QuestionsAsked + 1
	if next < len(sess.Questions) {
		return sess.Questions[next]
	}
	return constant.ClosingReply
}
