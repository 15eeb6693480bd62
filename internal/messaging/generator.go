// Package messaging drafts the personalized outreach messages. Template
// interpolation only; nothing here guarantees the message is any good,
// it just guarantees no placeholder ever leaves the building.
package messaging

import (
	"fmt"
	"strings"

	"go-linkedin-copilot/internal/resume"
	"go-linkedin-copilot/internal/scraper"
)

// maxMessageLength keeps drafts within LinkedIn's comfortable range;
// longer messages read like spam and get truncated in previews.
const maxMessageLength = 1200

type Generator struct {
	res resume.Data
}

func NewGenerator(res resume.Data) *Generator {
	return &Generator{res: res}
}

// Draft builds a message for a recruiter, optionally referencing a job.
func (g *Generator) Draft(r scraper.Recruiter, job *scraper.Job) string {
	var b strings.Builder

	name := firstName(r.Name)
	if name == "" {
		b.WriteString("Hi,\n\n")
	} else {
		fmt.Fprintf(&b, "Hi %s,\n\n", name)
	}

	if job != nil && job.Title != "" {
		fmt.Fprintf(&b, "I came across the %s opening", job.Title)
		if job.Company != "" {
			fmt.Fprintf(&b, " at %s", job.Company)
		}
		b.WriteString(" and it lines up well with my background. ")
	} else if r.Company != "" {
		fmt.Fprintf(&b, "I noticed you recruit for %s and wanted to reach out directly. ", r.Company)
	} else {
		b.WriteString("I wanted to reach out about opportunities you may be hiring for. ")
	}

	if g.res.Headline != "" {
		fmt.Fprintf(&b, "I'm a %s", strings.TrimSpace(g.res.Headline))
		if g.res.YearsExperience > 0 {
			fmt.Fprintf(&b, " with %d years of experience", g.res.YearsExperience)
		}
		b.WriteString(". ")
	}
	if len(g.res.Skills) > 0 {
		fmt.Fprintf(&b, "My core stack is %s.", joinSkills(g.res.Skills))
	}

	b.WriteString("\n\nWould you be open to a quick chat about current or upcoming roles?")
	if g.res.Name != "" {
		fmt.Fprintf(&b, "\n\nBest regards,\n%s", g.res.Name)
	}
	return b.String()
}

// Validate rejects drafts no human should approve: empty, over-long, or
// still carrying template placeholders.
func (g *Generator) Validate(message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return fmt.Errorf("message is empty")
	}
	if len(trimmed) > maxMessageLength {
		return fmt.Errorf("message is too long (%d > %d chars)", len(trimmed), maxMessageLength)
	}
	for _, marker := range []string{"{", "}", "%s", "%d", "<no value>"} {
		if strings.Contains(trimmed, marker) {
			return fmt.Errorf("message contains unresolved placeholder %q", marker)
		}
	}
	return nil
}

func firstName(full string) string {
	fields := strings.Fields(strings.TrimSpace(full))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func joinSkills(skills []string) string {
	if len(skills) > 4 {
		skills = skills[:4]
	}
	switch len(skills) {
	case 1:
		return skills[0]
	default:
		return strings.Join(skills[:len(skills)-1], ", ") + " and " + skills[len(skills)-1]
	}
}
