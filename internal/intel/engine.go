package intel

import (
	"context"
	"strings"
	"time"

	"autocareer/internal/llm"
	"autocareer/internal/models"
	"autocareer/internal/store"

	"go.uber.org/zap"
)

const (
	scoreTimeout  = 30 * time.Second
	letterTimeout = 60 * time.Second

	// Drafting is skipped below this score; generating letters for poor
	// fits wastes tokens.
	draftThreshold = 50.0
)

// ContextFetcher supplies company context for cover-letter generation.
type ContextFetcher interface {
	FetchForJobURL(jobURL string) (string, error)
}

// Engine runs job analysis and cover-letter drafting. The model tier is
// optional; every operation degrades to the deterministic scorer/drafter
// when the model is missing, slow, or returns garbage. Only missing rows
// and store failures surface as errors.
type Engine struct {
	store    store.Store
	client   llm.Client // nil when no model capability is configured
	provider string
	model    string
	fetcher  ContextFetcher
	log      *zap.Logger
}

func NewEngine(st store.Store, client llm.Client, provider, model string, fetcher ContextFetcher, log *zap.Logger) *Engine {
	return &Engine{
		store:    st,
		client:   client,
		provider: provider,
		model:    model,
		fetcher:  fetcher,
		log:      log,
	}
}

// clientFor returns the default client, or one built from a per-request
// credential override. A failed override falls back to deterministic mode
// rather than erroring out.
func (e *Engine) clientFor(ctx context.Context, modelKey string) llm.Client {
	if modelKey == "" {
		return e.client
	}
	provider := e.provider
	if provider == "" {
		provider = "openai"
	}
	client, err := llm.New(ctx, provider, modelKey, e.model, e.log)
	if err != nil {
		e.log.Warn("could not build override llm client, using deterministic path", zap.Error(err))
		return nil
	}
	return client
}

// AnalyzeJob scores one job against one profile and records the result on
// the job row. Never fails for model reasons; only unknown ids and store
// errors are returned.
func (e *Engine) AnalyzeJob(ctx context.Context, jobID, profileID int64, modelKey string) (*models.Analysis, error) {
	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	profile, err := e.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resumeText := profile.ResumeText
	if resumeText == "" {
		resumeText = profile.Skills
	}

	score, rationale := e.scoreJob(ctx, e.clientFor(ctx, modelKey), job, resumeText)

	if err := e.store.UpdateJobAnalysis(ctx, jobID, score, rationale); err != nil {
		return nil, err
	}

	e.log.Info("job analyzed",
		zap.Int64("job_id", jobID),
		zap.String("title", job.Title),
		zap.Float64("score", score))

	return &models.Analysis{
		JobID:     jobID,
		Title:     job.Title,
		Company:   job.Company,
		Score:     score,
		Rationale: rationale,
	}, nil
}

// scoreJob is the model tier with its deterministic safety net.
func (e *Engine) scoreJob(ctx context.Context, client llm.Client, job *models.Job, resumeText string) (float64, string) {
	jobText := job.Title + " " + job.Description + " " + job.Requirements

	if client == nil {
		return Score(resumeText, jobText)
	}

	reqCtx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()

	content, err := client.Complete(reqCtx, llm.Request{
		System:      scoreSystemPrompt,
		User:        buildScorePrompt(job, resumeText),
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		e.log.Warn("model scoring failed, falling back to keyword overlap",
			zap.String("provider", client.Name()), zap.Error(err))
		return Score(resumeText, jobText)
	}

	score, rationale, ok := parseScoreResponse(content)
	if !ok {
		e.log.Warn("could not parse model scoring response, falling back to keyword overlap",
			zap.String("provider", client.Name()))
		return Score(resumeText, jobText)
	}

	return score, rationale
}

// GenerateCoverLetter drafts a letter for the job/profile pair. Model-backed
// letters are persisted as a new Draft; the template fallback is returned
// without persisting, so a failed generation never leaves garbage behind.
func (e *Engine) GenerateCoverLetter(ctx context.Context, jobID, profileID int64, modelKey, companyContext string) (string, error) {
	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	profile, err := e.store.GetProfile(ctx, profileID)
	if err != nil {
		return "", err
	}

	client := e.clientFor(ctx, modelKey)
	if client == nil {
		return FallbackLetter(job, profile), nil
	}

	// Opportunistic context fetch; a miss never aborts drafting.
	if companyContext == "" && job.URL != "" && e.fetcher != nil {
		fetched, err := e.fetcher.FetchForJobURL(job.URL)
		if err != nil {
			e.log.Debug("company context fetch failed", zap.String("url", job.URL), zap.Error(err))
		} else {
			companyContext = fetched
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, letterTimeout)
	defer cancel()

	letter, err := client.Complete(reqCtx, llm.Request{
		System:      letterSystemPrompt,
		User:        buildLetterPrompt(job, profile, companyContext),
		Temperature: 0.8,
		MaxTokens:   700,
	})
	if err != nil || strings.TrimSpace(letter) == "" {
		e.log.Warn("model drafting failed, falling back to template letter",
			zap.String("provider", client.Name()), zap.Error(err))
		return FallbackLetter(job, profile), nil
	}

	letter = strings.TrimSpace(letter)

	draft := &models.Draft{
		JobID:          jobID,
		ProfileID:      profileID,
		CoverLetter:    letter,
		CompanyContext: truncate(companyContext, 1000),
	}
	if err := e.store.CreateDraft(ctx, draft); err != nil {
		return "", err
	}

	e.log.Info("cover letter drafted",
		zap.Int64("job_id", jobID),
		zap.Int64("draft_id", draft.ID))

	return letter, nil
}

// AnalyzeAndDraft runs scoring and, for fits at or above the threshold,
// drafting. A drafting degradation leaves CoverLetter nil; the analysis
// still comes back.
func (e *Engine) AnalyzeAndDraft(ctx context.Context, jobID, profileID int64, modelKey string) (*models.Analysis, error) {
	analysis, err := e.AnalyzeJob(ctx, jobID, profileID, modelKey)
	if err != nil {
		return nil, err
	}

	if analysis.Score < draftThreshold {
		e.log.Info("skipping cover letter for low-scoring job",
			zap.Int64("job_id", jobID), zap.Float64("score", analysis.Score))
		return analysis, nil
	}

	letter, err := e.GenerateCoverLetter(ctx, jobID, profileID, modelKey, "")
	if err != nil {
		return nil, err
	}
	analysis.CoverLetter = &letter

	return analysis, nil
}
