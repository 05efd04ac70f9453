package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/justsurfingit/jobhunt/internal/models"
)

// JobAnalyst is the LLM side of the pipeline. *LLMService implements it.
type JobAnalyst interface {
	FetchJobsContent(ctx context.Context, link, profile string) string
	StructureJobsContent(ctx context.Context, jobsContent string) []models.Job
	FollowUpLink(ctx context.Context, job models.Job) models.Job
	WriteCoverLetter(ctx context.Context, job models.Job) string
}

// CoverLetterStore persists a letter and returns the new document ID. *DocsService implements it.
type CoverLetterStore interface {
	StoreCoverLetter(ctx context.Context, title, letter string) string
}

// RowAppender writes rows to the spreadsheet. *SheetService implements it.
type RowAppender interface {
	AppendRows(ctx context.Context, rows [][]interface{}) (int64, error)
}

type PipelineService struct {
	Analyst JobAnalyst
	Letters CoverLetterStore
	Sheet   RowAppender
	// MaxConcurrency caps the per-job tasks in flight. 0 means one goroutine per job.
	MaxConcurrency int
}

func NewPipelineService(analyst JobAnalyst, letters CoverLetterStore, sheet RowAppender, maxConcurrency int) *PipelineService {
	return &PipelineService{
		Analyst:        analyst,
		Letters:        letters,
		Sheet:          sheet,
		MaxConcurrency: maxConcurrency,
	}
}

// Extract reads the listings page at link and returns the jobs that suit profile.
// It has no side effects on the document or spreadsheet services.
func (p *PipelineService) Extract(ctx context.Context, link, profile string) []models.Job {
	content := p.Analyst.FetchJobsContent(ctx, link, profile)
	if content == "" {
		return nil
	}
	jobs := p.Analyst.StructureJobsContent(ctx, content)
	source := hostOf(link)
	for i := range jobs {
		if jobs[i].JobSource == "" {
			jobs[i].JobSource = source
		}
	}
	return jobs
}

// Run is the full workflow for one listings page: extract the jobs, enrich
// each one concurrently, then append one row per job to the spreadsheet.
func (p *PipelineService) Run(ctx context.Context, link, profile string) (*models.RunResult, error) {
	result := &models.RunResult{RunID: uuid.NewString(), Link: link}
	runPrefix := "[Run: " + result.RunID[:8] + "]"
	start := time.Now()

	log.Printf("%s 🔎 Fetching jobs from %s", runPrefix, link)
	jobs := p.Extract(ctx, link, profile)
	if len(jobs) == 0 {
		log.Printf("%s ⏹️  No jobs found", runPrefix)
		result.Jobs = []models.ProcessedJob{}
		return result, nil
	}
	log.Printf("%s 📥 Processing %d jobs...", runPrefix, len(jobs))

	result.Jobs = p.process(ctx, jobs)

	rows := make([][]interface{}, len(result.Jobs))
	for i, pj := range result.Jobs {
		rows[i] = pj.Job.Row(pj.CoverLetterLink)
	}
	appended, err := p.Sheet.AppendRows(ctx, rows)
	if err != nil {
		log.Printf("%s ❌ Spreadsheet update failed: %v", runPrefix, err)
		return result, err
	}
	result.RowsAppended = appended

	log.Printf("%s ✅ Done in %s: %d jobs, %d rows appended", runPrefix, time.Since(start).Round(time.Millisecond), len(result.Jobs), appended)
	return result, nil
}

// process fans out one task per job and waits for all of them. Each task
// writes only its own slot, so results keep the listing order.
func (p *PipelineService) process(ctx context.Context, jobs []models.Job) []models.ProcessedJob {
	results := make([]models.ProcessedJob, len(jobs))

	var g errgroup.Group
	if p.MaxConcurrency > 0 {
		g.SetLimit(p.MaxConcurrency)
	}
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = p.processJob(ctx, job)
			return nil
		})
	}
	// tasks are best-effort and never return an error
	_ = g.Wait()
	return results
}

func (p *PipelineService) processJob(ctx context.Context, job models.Job) models.ProcessedJob {
	job = p.Analyst.FollowUpLink(ctx, job)
	logPrefix := jobLogPrefix(job)

	pj := models.ProcessedJob{Job: job}
	pj.CoverLetter = p.Analyst.WriteCoverLetter(ctx, job)
	if pj.CoverLetter == "" {
		log.Printf("%s ⏹️  No cover letter (missing CV, template or model output)", logPrefix)
		return pj
	}

	pj.CoverLetterDocID = p.Letters.StoreCoverLetter(ctx, job.CoverLetterTitle(), pj.CoverLetter)
	pj.CoverLetterLink = DocumentLink(pj.CoverLetterDocID)
	log.Printf("%s ✅ Cover letter stored: %s", logPrefix, pj.CoverLetterLink)
	return pj
}
