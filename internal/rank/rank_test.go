package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-linkedin-copilot/internal/resume"
	"go-linkedin-copilot/internal/scraper"
)

func TestRecruiterScore(t *testing.T) {
	res := resume.Data{TargetCompanies: []string{"Acme"}}

	tests := []struct {
		name      string
		recruiter scraper.Recruiter
		expected  float64
	}{
		{
			name: "complete technical recruiter at target company",
			recruiter: scraper.Recruiter{
				Name:     "Jane Doe",
				Title:    "Technical Recruiter",
				Company:  "Acme Corp",
				Headline: "Technical Recruiter at Acme Corp",
			},
			expected: 90,
		},
		{
			name: "generic talent title, unknown company",
			recruiter: scraper.Recruiter{
				Name:     "John Roe",
				Title:    "Talent Partner",
				Company:  "Globex",
				Headline: "Talent Partner at Globex",
			},
			expected: 55,
		},
		{
			name:      "empty profile",
			recruiter: scraper.Recruiter{},
			expected:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RecruiterScore(tt.recruiter, res), 0.01)
		})
	}
}

func TestRankRecruiters_BestFirst(t *testing.T) {
	res := resume.Data{}
	recruiters := []scraper.Recruiter{
		{Name: "Weak"},
		{Name: "Strong", Title: "Technical Recruiter", Company: "Acme", Headline: "Technical Recruiter"},
	}

	ranked := RankRecruiters(recruiters, res)
	assert.Equal(t, "Strong", ranked[0].Name)
	assert.Greater(t, ranked[0].RelevanceScore, ranked[1].RelevanceScore)
	//input slice is left untouched
	assert.Zero(t, recruiters[0].RelevanceScore)
}

func TestMatchScore(t *testing.T) {
	res := resume.Data{Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes"}}

	tests := []struct {
		name        string
		description string
		expected    float64
	}{
		{
			name:        "all skills mentioned",
			description: "We use Go, PostgreSQL, Docker and Kubernetes daily.",
			expected:    100,
		},
		{
			name:        "half the skills",
			description: "Backend role with go and docker.",
			expected:    50,
		},
		{
			name:        "nothing relevant",
			description: "Senior Java Spring position.",
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MatchScore(tt.description, res), 0.01)
		})
	}
}

func TestMatchScore_FoldsDiacritics(t *testing.T) {
	res := resume.Data{Skills: []string{"Hà Nội"}}
	assert.InDelta(t, 100, MatchScore("Office in Ha Noi", res), 0.01)
}

func TestShouldApply_Threshold(t *testing.T) {
	res := resume.Data{Skills: []string{"Go", "Docker"}}

	ok, score := ShouldApply("Go and Docker shop", res, 50)
	assert.True(t, ok)
	assert.InDelta(t, 100, score, 0.01)

	ok, score = ShouldApply("Java shop", res, 50)
	assert.False(t, ok)
	assert.InDelta(t, 0, score, 0.01)
}
