package interviewer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/apperror"
	"ai-interview-be/pkg/llm"
)

// historyWindow is how many trailing transcript messages are included in
// the generation prompt.
const historyWindow = 5

// Interviewer produces follow-up questions through an LLM provider and
// scores how well a candidate covered their own resume.
type Interviewer struct {
	provider llm.LLMProvider
}

func New(provider llm.LLMProvider) *Interviewer {
	return &Interviewer{provider: provider}
}

// GenerateReply asks the model for the next interviewer turn given the
// candidate's latest utterance and recent conversation context.
func (i *Interviewer) GenerateReply(ctx context.Context, profile *entity.CandidateProfile, history []entity.TranscriptMessage, userMessage string) (string, error) {
	prompt := buildPrompt(profile, history, userMessage)

	reply, err := i.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(60),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperror.Wrap(apperror.KindCollaboratorTimeout, "generate interviewer reply", err)
		}
		return "", apperror.Wrap(apperror.KindCollaboratorFailure, "generate interviewer reply", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", apperror.CollaboratorFailure("generate interviewer reply: empty response")
	}
	return reply, nil
}

func buildPrompt(profile *entity.CandidateProfile, history []entity.TranscriptMessage, userMessage string) string {
	var b strings.Builder
	b.WriteString(constant.InterviewerSystemContext)
	b.WriteString("\n\nCV Context:\n")
	b.WriteString(cvContext(profile))
	b.WriteString("\n\nRecent Conversation (last 5 turns):\n")

	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		role := "Candidate"
		if msg.Role == constant.RoleInterviewer {
			role = "Interviewer"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	b.WriteString("\nCandidate: ")
	b.WriteString(userMessage)
	b.WriteString("\nInterviewer (ask just one question, 1-2 sentences, following the rules):")
	return b.String()
}

func cvContext(profile *entity.CandidateProfile) string {
	if profile == nil {
		return "Skills: \nEducation: \nExperience: "
	}
	return fmt.Sprintf("Skills: %s\nEducation: %s\nExperience: %s",
		strings.Join(profile.Skills, ", "),
		strings.Join(firstN(profile.Education, 2), "; "),
		strings.Join(firstN(profile.Experience, 2), "; "))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// MatchScore returns the percentage of profile skills the candidate
// mentioned in their transcript messages, rounded to one decimal. A nil
// profile yields no score.
func MatchScore(profile *entity.CandidateProfile, transcript []entity.TranscriptMessage) *float64 {
	if profile == nil {
		return nil
	}

	mentioned := 0
	for _, skill := range profile.Skills {
		skillLower := strings.ToLower(skill)
		for _, msg := range transcript {
			if msg.Role != constant.RoleCandidate {
				continue
			}
			if strings.Contains(strings.ToLower(msg.Content), skillLower) {
				mentioned++
				break
			}
		}
	}

	totalSkills := len(profile.Skills)
	if totalSkills == 0 {
		totalSkills = 1
	}
	score := math.Round(float64(mentioned)/float64(totalSkills)*100*10) / 10
	return &score
}
