package intel

import (
	"fmt"

	"autocareer/internal/models"
)

// FallbackLetter produces the templated cover letter used whenever no model
// is available. Total function: missing fields get neutral placeholders.
func FallbackLetter(job *models.Job, profile *models.Profile) string {
	company := "the company"
	title := "the position"
	name := "Candidate"
	skills := "technology"

	if job != nil {
		if job.Company != "" {
			company = job.Company
		}
		if job.Title != "" {
			title = job.Title
		}
	}
	if profile != nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Skills != "" {
			skills = truncate(profile.Skills, 100)
		}
	}

	return fmt.Sprintf(`Dear Hiring Manager at %s,

I am excited to apply for the %s position. With my background in %s and relevant experience in the field, I believe I would be a strong fit for your team.

My technical skills align well with the requirements outlined in your job posting. I am particularly drawn to %s's work and would welcome the opportunity to contribute to your team's success.

Thank you for considering my application. I look forward to discussing how my background and skills would benefit %s.

Best regards,
%s
`, company, title, skills, company, company, name)
}
