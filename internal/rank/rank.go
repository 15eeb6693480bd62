package rank

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-linkedin-copilot/internal/resume"
	"go-linkedin-copilot/internal/scraper"
)

var (
	recruiterTitleRegex = regexp.MustCompile(`(?i)\b(technical\s+recruiter|tech\s+recruiter|talent\s+acquisition|sourcer)\b`)
	anyRecruiterRegex   = regexp.MustCompile(`(?i)\b(recruiter|recruiting|talent|hiring)\b`)
)

// fold lowercases and strips diacritics so "Hà Nội" and "ha noi" compare
// equal. The transformer is stateful, so build one per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// RecruiterScore rates how promising a recruiter is for this candidate,
// 0-100. Factors: apparent activity, company relevance against the
// target list, profile completeness and title relevance.
func RecruiterScore(r scraper.Recruiter, res resume.Data) float64 {
	score := 0.0

	//recent activity heuristic: a filled-out profile suggests an active one
	if r.About != "" || r.Headline != "" {
		score += 20
	} else {
		score += 10
	}

	//company relevance (0-25)
	company := fold(r.Company)
	for _, target := range res.TargetCompanies {
		if company != "" && strings.Contains(company, fold(target)) {
			score += 25
			break
		}
	}

	//profile completeness (0-20)
	if r.Name != "" {
		score += 7
	}
	if r.Headline != "" {
		score += 7
	}
	if r.Company != "" {
		score += 6
	}

	//title relevance (0-25)
	title := r.Title + " " + r.Headline
	switch {
	case recruiterTitleRegex.MatchString(title):
		score += 25
	case anyRecruiterRegex.MatchString(title):
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}

// RankRecruiters scores every recruiter and returns them best-first.
func RankRecruiters(recruiters []scraper.Recruiter, res resume.Data) []scraper.Recruiter {
	ranked := make([]scraper.Recruiter, len(recruiters))
	copy(ranked, recruiters)
	for i := range ranked {
		ranked[i].RelevanceScore = RecruiterScore(ranked[i], res)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	return ranked
}

// MatchScore is the percentage of the candidate's skills mentioned in
// the job description, 0-100.
func MatchScore(description string, res resume.Data) float64 {
	if len(res.Skills) == 0 || description == "" {
		return 0
	}
	text := fold(description)
	matched := 0
	for _, skill := range res.Skills {
		if strings.Contains(text, fold(skill)) {
			matched++
		}
	}
	return float64(matched) / float64(len(res.Skills)) * 100
}

// ShouldApply decides whether a job clears the configured minimum match.
func ShouldApply(description string, res resume.Data, minScore float64) (bool, float64) {
	score := MatchScore(description, res)
	return score >= minScore, score
}
