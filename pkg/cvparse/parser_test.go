package cvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Candidate
jane.candidate@example.com | 555-123-4567 | linkedin.com/in/jane-candidate

EDUCATION
Bachelor of Science in Computer Science, State University

EXPERIENCE
Senior Software Engineer at Acme Inc, 2019-2024
Built services in Python and Go with Docker and Kubernetes on AWS.

SKILLS
Python, Docker, Kubernetes, AWS, PostgreSQL, Leadership
`

func TestParseExtractsProfile(t *testing.T) {
	p := NewParser()

	profile, err := p.Parse("resume.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", profile.Filename)
	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Docker")
	assert.Contains(t, profile.Skills, "Kubernetes")
	assert.Contains(t, profile.Skills, "PostgreSQL")
	assert.Contains(t, profile.Skills, "Leadership")

	require.NotEmpty(t, profile.Education)
	assert.Contains(t, profile.Education[0], "Bachelor of Science")

	assert.NotEmpty(t, profile.Experience)

	assert.Equal(t, "jane.candidate@example.com", profile.Contact["email"])
	assert.Equal(t, "linkedin.com/in/jane-candidate", profile.Contact["linkedin"])
	assert.NotEmpty(t, profile.Contact["phone"])
	assert.False(t, profile.ParsedAt.IsZero())
}

func TestParseIsDeterministic(t *testing.T) {
	p := NewParser()

	first, err := p.Parse("resume.txt", []byte(sampleResume))
	require.NoError(t, err)
	second, err := p.Parse("resume.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Education, second.Education)
	assert.Equal(t, first.Experience, second.Experience)
}

func TestParseRejectsUnsupportedType(t *testing.T) {
	p := NewParser()

	_, err := p.Parse("resume.pdf", []byte("content"))
	assert.Error(t, err)
}

func TestParseRejectsEmptyFile(t *testing.T) {
	p := NewParser()

	_, err := p.Parse("resume.txt", []byte("   \n  "))
	assert.Error(t, err)
}
