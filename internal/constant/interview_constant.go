package constant

// Session lifecycle phases.
const (
	PhaseCreated = "created"
	PhaseActive  = "active"
	PhaseEnded   = "ended"
)

// Transcript roles.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// Dialogue controller phases, derived from the question counter.
const (
	DialogueAwaitingFirstQuestion = "awaiting_first_question"
	DialogueConversing            = "conversing"
	DialogueExhausted             = "exhausted"
)

// Engagement levels reported in the behavior summary.
const (
	EngagementLow    = "Low"
	EngagementMedium = "Medium"
	EngagementHigh   = "High"
)

// Real-time frame types (inbound).
const (
	FrameTypeAudio = "audio"
	FrameTypeVideo = "video"
	FrameTypePing  = "ping"
)

// Real-time frame types (outbound).
const (
	FrameTypeTranscription = "transcription"
	FrameTypeAIResponse    = "ai_response"
	FrameTypeVisionMetrics = "vision_metrics"
	FrameTypeError         = "error"
	FrameTypePong          = "pong"
)

// Session defaults and bounds.
const (
	DefaultMaxDurationSeconds = 900
	DefaultTotalQuestions     = 8
	MinTotalQuestions         = 3
	MaxTotalQuestions         = 20
)

// AllowedDurationSeconds maps the selectable interview lengths (minutes) to
// their duration budget in seconds. Unlisted values fall back to 15 minutes.
var AllowedDurationSeconds = map[int]int{
	10: 600,
	15: 900,
	30: 1800,
	60: 3600,
}

// InterviewIntroPrefix is prepended to the first planned question when the
// session starts.
const InterviewIntroPrefix = "Hello! Welcome to the virtual interview. "

// ClosingReply is sent for candidate utterances that arrive after the question
// budget is exhausted.
const ClosingReply = "Thank you, that covers everything I wanted to ask. Is there anything you would like to add before we wrap up?"

// GenericQuestions is the fixed fallback question plan used when no candidate
// profile is attached. Order matters: plans are truncated from the front.
var GenericQuestions = []string{
	"Tell me about yourself and your background.",
	"What interests you most about this role?",
	"Describe a challenging project you've worked on.",
	"How do you handle working under pressure?",
	"What are your greatest strengths?",
	"Where do you see yourself in 5 years?",
	"Why are you looking for a new opportunity?",
	"How do you stay updated with industry trends?",
	"Describe a time when you had to learn something new quickly.",
	"What motivates you in your work?",
}

// SkillQuestionTemplates is applied, in order, to each of the leading profile
// skills when planning a tailored question list.
var SkillQuestionTemplates = []string{
	"Can you tell me about your experience with %s?",
	"How have you used %s in your previous projects?",
	"What challenges have you faced while working with %s?",
}

// PlannedSkillCount limits how many profile skills contribute tailored
// questions to the plan.
const PlannedSkillCount = 3

// InterviewerSystemContext frames every dialogue-generation request.
const InterviewerSystemContext = "You are an AI interviewer conducting a professional and interactive interview session. " +
	"Follow these rules strictly: " +
	"1) Always ask one question at a time and wait for the candidate's response. " +
	"2) Start with general background, then technical, situational, and project-specific questions based on the CV. " +
	"3) If the candidate's answer is brief, ask a clarifying follow-up for more detail. " +
	"4) If the answer is detailed, ask a deeper, related question to probe expertise. " +
	"5) Keep a natural, conversational tone. " +
	"6) Never provide answers yourself; only ask questions and react like an interviewer."

// Event type codes published on the lifecycle bus.
const (
	EventSessionCreated = "SESSION_CREATED"
	EventSessionStarted = "SESSION_STARTED"
	EventSessionEnded   = "SESSION_ENDED"
	EventSessionDeleted = "SESSION_DELETED"
)
