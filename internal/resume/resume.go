// Package resume holds the candidate data jobs and recruiters are
// matched against. Data comes from the config profile; parsing an
// actual resume document is out of scope.
package resume

import "go-linkedin-copilot/internal/config"

type Data struct {
	Name            string
	Headline        string
	Summary         string
	Skills          []string
	YearsExperience int
	TargetCompanies []string
}

func FromProfile(p config.Profile) Data {
	return Data{
		Name:            p.Name,
		Headline:        p.Headline,
		Summary:         p.Summary,
		Skills:          p.Skills,
		YearsExperience: p.YearsExperience,
		TargetCompanies: p.TargetCompanies,
	}
}
