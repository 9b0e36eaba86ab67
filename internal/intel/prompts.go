package intel

import (
	"fmt"

	"autocareer/internal/models"
)

const scoreSystemPrompt = "You are an expert technical recruiter specializing in ML/AI and software engineering roles. You provide precise, evidence-based candidate assessments with specific examples from their background."

const letterSystemPrompt = "You are an elite career advisor specializing in technical roles. Your cover letters are known for being specific, achievement-focused, and highly persuasive. You avoid generic language and always include concrete examples."

// truncate caps s at limit runes. Slicing bytes could split a multi-byte
// rune and leak invalid UTF-8 into prompts and letters.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// buildScorePrompt creates the fit-assessment prompt. The response contract
// is strict: a SCORE line and a RATIONALE line, nothing else is trusted.
func buildScorePrompt(job *models.Job, resumeText string) string {
	jobText := fmt.Sprintf(`
Title: %s
Company: %s
Description: %s
Requirements: %s
`, orNA(job.Title), orNA(job.Company), truncate(orNA(job.Description), 2000), truncate(orNA(job.Requirements), 1000))

	return fmt.Sprintf(`You are an expert technical recruiter with deep knowledge of ML/AI and software engineering roles. Your task is to provide a precise, data-driven assessment of candidate-job fit.

CANDIDATE PROFILE:
%s

JOB POSTING:
%s

ANALYSIS FRAMEWORK:
Evaluate the following dimensions (0-100 each):
1. Technical Skills Match: Does the candidate have the required technical stack? (programming languages, frameworks, tools)
2. Experience Level Alignment: Does the candidate's years of experience match the seniority level? (junior: 0-2y, mid: 2-5y, senior: 5+y)
3. Domain Expertise: Does the candidate have relevant domain experience? (e.g., NLP, computer vision, MLOps, etc.)
4. Required vs Nice-to-Have: What percentage of "required" vs "nice-to-have" qualifications does the candidate meet?

SCORING RUBRIC:
- 90-100: Exceptional fit - Candidate exceeds most requirements
- 75-89: Strong fit - Candidate meets all core requirements plus some preferred
- 60-74: Good fit - Candidate meets most core requirements
- 40-59: Moderate fit - Candidate meets some requirements, gaps exist
- 0-39: Poor fit - Significant misalignment with requirements

INSTRUCTIONS:
1. Calculate an overall fit score (0-100) using the framework above
2. Provide a detailed rationale with:
   - Specific matching skills/technologies (list 3-5)
   - Key strengths that align with the role
   - Any notable gaps or missing qualifications
   - Experience level assessment

Format your response EXACTLY as:
SCORE: [number between 0-100]
RATIONALE: [Your detailed analysis - 3-4 sentences covering matches, strengths, and gaps]
`, truncate(resumeText, 3000), jobText)
}

// buildLetterPrompt creates the cover-letter generation prompt.
func buildLetterPrompt(job *models.Job, profile *models.Profile, companyContext string) string {
	intelSection := "Research the company values and mission independently"
	if companyContext != "" {
		intelSection = truncate(companyContext, 2000)
	}

	name := profile.Name
	if name == "" {
		name = "The candidate"
	}

	return fmt.Sprintf(`You are an expert career coach and professional writer specializing in crafting compelling, persuasive job application materials for technical roles. Your cover letters have helped candidates land positions at top tech companies.

CANDIDATE PROFILE:
Name: %s
Technical Skills: %s
Professional Experience: %s
Education: %s

TARGET ROLE:
Position: %s
Company: %s
Job Description: %s
Key Requirements: %s

COMPANY INTELLIGENCE:
%s

WRITING GUIDELINES:
1. OPENING (Hook): Start with a compelling statement that shows genuine enthusiasm and immediately demonstrates understanding of the role
2. VALUE PROPOSITION (Body):
   - Identify 2-3 key requirements from the job description
   - For each, provide a SPECIFIC achievement or experience that demonstrates mastery
   - Use quantifiable results when possible (e.g., "improved model accuracy by 15%%", "reduced latency by 40%%")
   - Show technical depth with specific technologies/methodologies
3. COMPANY ALIGNMENT (Why Them):
   - Reference specific company initiatives, products, or values
   - Connect your background to their mission
   - Show you've done your research
4. CLOSING (Call to Action): Express eagerness to discuss how you can contribute, professional yet confident

TONE: Professional, confident (not arrogant), specific (not generic), enthusiastic (not desperate)

LENGTH: 3-4 concise paragraphs (250-350 words total)

CRITICAL RULES:
- NO clichés like "I am writing to express my interest" or "I believe I would be a great fit"
- USE specific examples and achievements
- DEMONSTRATE technical expertise through concrete details
- PERSONALIZE to this specific role and company
- AVOID generic statements that could apply to any job

Write a high-impact cover letter that will make the hiring manager want to interview this candidate:
`, name, truncate(orNA(profile.Skills), 800), truncate(orNA(profile.Experience), 1200), truncate(orNA(profile.Education), 500),
		orNA(job.Title), orNA(job.Company), truncate(orNA(job.Description), 1500), truncate(orNA(job.Requirements), 800),
		intelSection)
}
