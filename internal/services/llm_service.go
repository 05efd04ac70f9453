package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/jobhunt/internal/models"
)

type LLMService struct {
	// Client is shared by every call so we don't recreate it per job
	Client    llms.Model
	Fetcher   PageFetcher
	Templates *TemplateStore
	// CV is the candidate's CV text. Without it no cover letters are written.
	CV string
}

// NewGeminiModel initializes the Gemini client through langchaingo.
func NewGeminiModel(ctx context.Context, apiKey, model string) (llms.Model, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return llm, nil
}

func NewLLMService(client llms.Model, fetcher PageFetcher, templates *TemplateStore, cv string) *LLMService {
	return &LLMService{
		Client:    client,
		Fetcher:   fetcher,
		Templates: templates,
		CV:        cv,
	}
}

const fetchJobsPrompt = `
You are given the text of the job listings page at %s.
Find all jobs on the page suitable for %s.
Return all details of all suitable jobs.
Include the job source for each job. The job source should be the name of the host of the link (%s) e.g. Hacker News, LinkedIn.
Links to individual job pages appear in square brackets after the link text; include them.
Return nothing else besides the jobs information.

### PAGE CONTENT:
%s
`

// FetchJobsContent reads the listings page and asks the model to pick out the
// jobs that suit profile. It returns "" if either step fails.
func (s *LLMService) FetchJobsContent(ctx context.Context, link, profile string) string {
	page, err := s.Fetcher.Fetch(ctx, link)
	if err != nil {
		log.Printf("❌ Job Fetching Error: %v", err)
		return ""
	}

	prompt := fmt.Sprintf(fetchJobsPrompt, link, profile, hostOf(link), page)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		log.Printf("❌ Job Fetching Error: %v", err)
		return ""
	}
	return resp
}

const structureJobsPrompt = `
Return the job information in structured json format for the text below.
Return a JSON array with one object per job. Each object has exactly these keys:
%s
Where a value for an attribute is not available, put an empty string or an empty list.
Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

### TEXT:
%s
`

// StructureJobsContent turns the free text from FetchJobsContent into job records.
// It returns nil when the model fails or its output holds no jobs.
func (s *LLMService) StructureJobsContent(ctx context.Context, jobsContent string) []models.Job {
	if strings.TrimSpace(jobsContent) == "" {
		return nil
	}
	prompt := fmt.Sprintf(structureJobsPrompt, fieldSchema(), jobsContent)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithJSONMode())
	if err != nil {
		log.Printf("❌ Structuring Jobs Content Error: %v", err)
		return nil
	}
	jobs, err := ParseJobs(resp)
	if err != nil {
		log.Printf("❌ Structuring Jobs Content Error: %v. Raw: %s", err, shorten(resp, 200))
		return nil
	}
	return jobs
}

const followUpPrompt = `
Below is the text of the job page at %s.
Find any new information on the page for the job with the current state:
%s
Return the updated job state including all job fields, as a single JSON object with the same keys.
If there is no useful extra information in the job page, just return the current job state.
Format the output as valid JSON only.

### PAGE CONTENT:
%s
`

// FollowUpLink visits the job's own page and returns the job enriched with
// whatever the page adds. Any failure returns the job unchanged.
func (s *LLMService) FollowUpLink(ctx context.Context, job models.Job) models.Job {
	if strings.TrimSpace(job.JobLink) == "" {
		return job
	}
	logPrefix := jobLogPrefix(job)

	page, err := s.Fetcher.Fetch(ctx, job.JobLink)
	if err != nil {
		log.Printf("%s ⚠️ Follow Up Link Error: %v", logPrefix, err)
		return job
	}

	current, err := json.Marshal(job)
	if err != nil {
		log.Printf("%s ⚠️ Follow Up Link Error: %v", logPrefix, err)
		return job
	}

	prompt := fmt.Sprintf(followUpPrompt, job.JobLink, current, page)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithJSONMode())
	if err != nil {
		log.Printf("%s ⚠️ Follow Up Link Error: %v", logPrefix, err)
		return job
	}

	updated, err := parseJobUpdate(resp)
	if err != nil {
		log.Printf("%s ⚠️ Follow Up Link Error: %v", logPrefix, err)
		return job
	}
	job.Merge(updated)
	return job
}

const coverLetterPrompt = `
Write a cover letter for the job %s at company %s based on the following template: %s.
The job description is: %s.
The job type is: %s.
The company description is: %s.
The technologies used in the job are: %s.
The job source is %s.
The cover letter is for the person with the following CV: %s.
The cover letter should include references to elements of the technologies,
the job and company descriptions and relate these elements to elements in the user CV.
Do NOT claim that the user has a skill or knowledge of or experience with a technology if it is not referenced in the CV.
Return only the cover letter and nothing else.
`

// WriteCoverLetter returns a letter for job, or "" when there is no CV, no
// template for the job type, or the model fails.
func (s *LLMService) WriteCoverLetter(ctx context.Context, job models.Job) string {
	if strings.TrimSpace(s.CV) == "" || s.Templates == nil {
		return ""
	}
	logPrefix := jobLogPrefix(job)

	template, err := s.Templates.Load(job.JobType)
	if err != nil {
		log.Printf("%s ❌ Cover Letter Error: %v", logPrefix, err)
		return ""
	}
	if template == "" {
		return ""
	}

	prompt := fmt.Sprintf(coverLetterPrompt,
		job.JobTitle, job.Company, template,
		job.JobDescription, job.JobType, job.CompanyDescription,
		strings.Join(job.Technologies, ", "), job.JobSource, s.CV,
	)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		log.Printf("%s ❌ Cover Letter Error: %v", logPrefix, err)
		return ""
	}
	return strings.TrimSpace(resp)
}

func fieldSchema() string {
	var sb strings.Builder
	for _, f := range models.JobFields() {
		sb.WriteString(fmt.Sprintf("  %q: %s\n", f.Name, f.Description))
	}
	return sb.String()
}

// hostOf returns the host of link without a leading "www.".
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// jobLogPrefix is a short tag so a single job can be followed through the logs,
// e.g. "[Job: Backend Engineer...]"
func jobLogPrefix(job models.Job) string {
	return fmt.Sprintf("[Job: %s]", shorten(job.JobTitle, 20))
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
