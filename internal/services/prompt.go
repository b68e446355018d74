package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const noJobDescriptionPlaceholder = "(No job description provided)"

const validatorPrompt = `You validate input for a resume analysis service.

You receive:
1. Resume Text
2. Job Description (the target context: a full job description OR a short list of role keywords)

Check that:
- the resume is readable, has real content and is not garbled
- the target context is present and specific enough to compare against
- nothing essential is missing (no experience or skills section at all, empty text, random characters)

Return ONLY a JSON object:
{
  "is_valid": true,
  "issues": ["each problem you found, empty when none"],
  "input_type": "job_description",
  "extraction_plan": "one or two sentences on what to extract from each input"
}

Field rules:
- input_type is "job_description" for prose job postings and "role_keywords" for a bare list of roles or skills.
- Flag resumes under 50 words or with no recognisable structure.
- Flag a target context that is missing or too vague to score against.
- Be strict but fair.`

const extractionPrompt = `You extract technical keywords from a resume and a job description.

Extract programming languages, frameworks, libraries, tools, platforms, cloud services, databases,
methodologies and certifications. Do not extract soft skills (communication, leadership, teamwork).

Normalisation:
- Keep special spellings exactly: C++, C#, .NET, Node.js, Next.js, ASP.NET.
- Use standard capitalisation: Python, JavaScript, PostgreSQL, Kubernetes.
- Merge acronyms with their long forms: "ML" and "Machine Learning" become "Machine Learning", "K8s" becomes "Kubernetes", "Amazon Web Services" becomes "AWS".
- Drop version numbers: "Python 3.12" becomes "Python".
- Keep distinct technologies distinct: SQL vs NoSQL, Java vs JavaScript, React vs React Native.
- Never report "SQL" just because "MySQL", "PostgreSQL" or "NoSQL" appears.

Only extract what is explicitly written. Never infer related tools.

Resume keywords go in resume_keywords, job description keywords go in target_keywords.
If no job description was provided, target_keywords must be an empty list.

Return ONLY a JSON object without comments:
{
  "resume_keywords": ["..."],
  "target_keywords": ["..."],
  "extraction_notes": "short notes on extraction quality or edge cases"
}`

const analysisPrompt = `You score how well a resume matches a job, given two keyword lists.

Tasks:
1. matched_keywords: target keywords that also appear in the resume keywords.
2. missing_keywords: target keywords absent from the resume keywords.
3. match_score: matched count divided by target count, rounded to 2 decimals, between 0 and 1.
4. confidence_notes: what the score means, the strongest areas and the main gaps.
5. recommendations: 3 to 5 specific, actionable items ordered by impact.

Matching:
- Case-insensitive, whole keyword only.
- Treat well-known synonyms as one match (ML = Machine Learning, K8s = Kubernetes, GCP = Google Cloud Platform).
- Java never matches JavaScript. SQL never matches NoSQL or MySQL. React never matches React Native.
- Only use keywords present in the given lists. When unsure, count the keyword as missing.

Edge cases:
- No target keywords: match_score 0.0, note that no target requirements were provided.
- No resume keywords: match_score 0.0, note that no technical skills were detected.

Avoid pass/fail wording and ATS jargon.

Return ONLY a JSON object:
{
  "matched_keywords": ["..."],
  "missing_keywords": ["..."],
  "match_score": 0.0,
  "confidence_notes": "...",
  "recommendations": ["..."]
}`

const finalOutputPrompt = `You write the final summary of a resume analysis for the candidate.

You receive the resume keywords, target keywords, matched and missing keywords, the match score,
confidence notes and recommendations.

Write:
1. An overall assessment in two or three sentences.
2. Key strengths, based only on the matched keywords.
3. Areas for development, based only on the missing keywords.
4. The top 3 to 5 recommendations.

Use short paragraphs with headers. Be professional, honest and encouraging.
Do not claim skills that are not in the matched keywords. Do not use ATS jargon or pass/fail
language. Keep recommendations specific to the missing keywords.`

// PromptBuilder renders the user input sent alongside each system prompt.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (pb *PromptBuilder) BuildValidationInput(resumeText, jobDescription string) string {
	return fmt.Sprintf("Resume Text:\n%s\n\nJob Description:\n%s", resumeText, jobDescription)
}

func (pb *PromptBuilder) BuildExtractionInput(resumeText, jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = noJobDescriptionPlaceholder
	}
	return fmt.Sprintf("Resume Text:\n%s\n\nJob Description:\n%s\n", resumeText, jobDescription)
}

func (pb *PromptBuilder) BuildAnalysisInput(resumeKeywords, targetKeywords []string) string {
	return fmt.Sprintf("Resume Keywords: %s\nTarget Keywords: %s\n",
		formatList(resumeKeywords),
		formatList(targetKeywords),
	)
}

func (pb *PromptBuilder) BuildFinalOutputInput(state models.WorkflowState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Resume Keywords: %s\n", formatList(state.ResumeKeywords))
	fmt.Fprintf(&b, "Target Keywords: %s\n", formatList(state.TargetKeywords))
	fmt.Fprintf(&b, "Matched Keywords: %s\n", formatList(state.MatchedKeywords))
	fmt.Fprintf(&b, "Missing Keywords: %s\n", formatList(state.MissingKeywords))
	fmt.Fprintf(&b, "Match Score: %.2f\n", state.MatchScore)
	fmt.Fprintf(&b, "Confidence Notes: %s\n", state.ConfidenceNotes)
	fmt.Fprintf(&b, "Recommendations:\n")
	for i, rec := range state.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return b.String()
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	return "[" + strings.Join(values, ", ") + "]"
}
