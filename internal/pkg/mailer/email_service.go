package mailer

import (
	"fmt"
	"strings"

	"ai-interview-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSummaryReport(toEmail, sessionID string, summary *entity.SessionSummary) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendSummaryReport(toEmail, sessionID string, summary *entity.SessionSummary) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Interview Summary %s", sessionID))

	matchScore := "n/a"
	if summary.CVMatchScore != nil {
		matchScore = fmt.Sprintf("%.1f%%", *summary.CVMatchScore)
	}

	var recs strings.Builder
	for _, r := range summary.Recommendations {
		recs.WriteString("<li>" + r + "</li>")
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Interview Session Report</h2>
			<p>Session <b>%s</b> has finished.</p>
			<ul>
				<li>Duration: %.1f minutes</li>
				<li>Messages exchanged: %d</li>
				<li>Engagement level: %s</li>
				<li>CV match score: %s</li>
			</ul>
			<h3>Behavior</h3>
			<ul>
				<li>Average eye contact: %.2f</li>
				<li>Average posture: %.2f</li>
				<li>Average attention: %.2f</li>
				<li>Total gestures: %d</li>
			</ul>
			<h3>Recommendations</h3>
			<ul>%s</ul>
		</div>
	`, sessionID,
		summary.DurationMinutes,
		summary.TotalMessages,
		summary.Behavior.EngagementLevel,
		matchScore,
		summary.Behavior.AverageEyeContactScore,
		summary.Behavior.AveragePostureScore,
		summary.Behavior.AverageAttentionScore,
		summary.Behavior.TotalGestures,
		recs.String())

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send summary report to %s: %w", toEmail, err)
	}
	return nil
}
