package services

import (
	"context"
	"errors"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/cache"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	pgrepo "github.com/Perfect-Cube/Reflex/internal/repositories/postgres"
	"github.com/Perfect-Cube/Reflex/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const reportCacheTTL = time.Hour

type ReportService interface {
	// Get returns the interview's report, generating it on demand when the
	// interview is terminal and no report exists yet.
	Get(ctx context.Context, interviewID string) (*models.Report, error)
	// Generate evaluates the transcript and stores the report. Idempotent: an
	// existing report is returned untouched.
	Generate(ctx context.Context, interviewID string) (*models.Report, error)
}

type reportService struct {
	interviews pgrepo.InterviewRepo
	messages   pgrepo.MessageRepo
	reports    pgrepo.ReportRepo
	cache      cache.Cache
	llm        llm.Provider
	log        *logrus.Logger
	now        func() time.Time
}

func NewReportService(
	interviews pgrepo.InterviewRepo,
	messages pgrepo.MessageRepo,
	reports pgrepo.ReportRepo,
	c cache.Cache,
	provider llm.Provider,
	log *logrus.Logger,
) ReportService {
	return &reportService{
		interviews: interviews,
		messages:   messages,
		reports:    reports,
		cache:      c,
		llm:        provider,
		log:        log,
		now:        time.Now,
	}
}

func reportCacheKey(interviewID string) string { return "report:" + interviewID }

func (s *reportService) Get(ctx context.Context, interviewID string) (*models.Report, error) {
	const op = "ReportService.Get"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}

	var cached models.Report
	if hit, err := s.cache.GetJSON(ctx, reportCacheKey(interviewID), &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		s.log.WithError(err).Warn("report cache read failed")
	}

	rep, err := s.reports.GetByInterview(ctx, interviewID)
	if err == nil {
		s.cacheReport(ctx, rep)
		return rep, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load report", err)
	}

	// no report yet; only terminal interviews qualify for on-demand generation
	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get interview", err)
	}
	if !models.TerminalStatus(iv.Status) {
		return nil, utils.E(utils.CodeNotFound, op, "report not found or interview is not yet complete", nil)
	}

	s.log.WithField("interview_id", interviewID).Info("report missing for finished interview, generating on demand")
	rep, err = s.Generate(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	s.cacheReport(ctx, rep)
	return rep, nil
}

func (s *reportService) Generate(ctx context.Context, interviewID string) (*models.Report, error) {
	const op = "ReportService.Generate"

	// at most one report per interview
	if existing, err := s.reports.GetByInterview(ctx, interviewID); err == nil {
		return existing, nil
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing report", err)
	}

	msgs, err := s.messages.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}

	ev := agents.New(s.llm, "").Evaluate(ctx, FormatTranscript(msgs))

	rep := &models.Report{
		ID:          uuid.NewString(),
		InterviewID: interviewID,
		Score:       ev.Score,
		Summary:     ev.Summary,
		Strengths:   ev.Strengths,
		Weaknesses:  ev.Weaknesses,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		if errors.Is(err, pgrepo.ErrDuplicate) {
			// lost the race; the first writer's report wins
			return s.reports.GetByInterview(ctx, interviewID)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save report", err)
	}
	return rep, nil
}

func (s *reportService) cacheReport(ctx context.Context, rep *models.Report) {
	if err := s.cache.SetJSON(ctx, reportCacheKey(rep.InterviewID), rep, reportCacheTTL); err != nil {
		s.log.WithError(err).Warn("report cache write failed")
	}
}
