package messaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-linkedin-copilot/internal/resume"
	"go-linkedin-copilot/internal/scraper"
)

func testResume() resume.Data {
	return resume.Data{
		Name:            "Alex Nguyen",
		Headline:        "Backend Engineer",
		Skills:          []string{"Go", "PostgreSQL", "Docker"},
		YearsExperience: 3,
	}
}

func TestDraft_PersonalizesRecruiter(t *testing.T) {
	g := NewGenerator(testResume())
	r := scraper.Recruiter{Name: "Jane Doe", Company: "Acme"}

	msg := g.Draft(r, nil)

	assert.True(t, strings.HasPrefix(msg, "Hi Jane,"))
	assert.Contains(t, msg, "Acme")
	assert.Contains(t, msg, "Backend Engineer")
	assert.Contains(t, msg, "3 years")
	assert.Contains(t, msg, "Go, PostgreSQL and Docker")
	assert.Contains(t, msg, "Alex Nguyen")
	require.NoError(t, g.Validate(msg))
}

func TestDraft_WithJobContext(t *testing.T) {
	g := NewGenerator(testResume())
	r := scraper.Recruiter{Name: "Jane Doe", Company: "Acme"}
	job := &scraper.Job{Title: "Senior Backend Engineer", Company: "Acme"}

	msg := g.Draft(r, job)
	assert.Contains(t, msg, "Senior Backend Engineer opening at Acme")
	require.NoError(t, g.Validate(msg))
}

func TestDraft_UnknownRecruiterStillValid(t *testing.T) {
	g := NewGenerator(testResume())

	msg := g.Draft(scraper.Recruiter{}, nil)
	assert.True(t, strings.HasPrefix(msg, "Hi,"))
	require.NoError(t, g.Validate(msg))
}

func TestValidate(t *testing.T) {
	g := NewGenerator(testResume())

	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{name: "valid", message: "Hi Jane, short and fine.", wantErr: false},
		{name: "empty", message: "   ", wantErr: true},
		{name: "unresolved placeholder", message: "Hi {name}, I saw your profile", wantErr: true},
		{name: "too long", message: strings.Repeat("x", 1300), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(tt.message)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
