package types

import "strings"

// RecomputeSearchValues rebuilds the searchable token list of the
// application. Must be called after any mutation touching a searchable field.
func (app *Application) RecomputeSearchValues() {
	values := []string{
		app.AppID,
		app.State,
		app.Sections.Applicant.Info.DisplayName(),
		app.Sections.Applicant.Info.GoogleEmail,
		app.Sections.Applicant.Info.PrimaryAffiliation,
		app.Sections.ProjectInfo.Title,
	}

	tokens := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		tokens = append(tokens, v)
	}
	app.SearchValues = tokens
}

// DisplayName joins the non-empty name parts.
func (p PersonalInfo) DisplayName() string {
	parts := []string{}
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, " ")
}
