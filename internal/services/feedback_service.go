package services

import (
	"context"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	pgrepo "github.com/Perfect-Cube/Reflex/internal/repositories/postgres"
	"github.com/Perfect-Cube/Reflex/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type FeedbackService interface {
	// Submit appends the admin critique and derives an improvement suggestion
	// from the transcript so far. The suggestion is logged, never stored; the
	// critique itself becomes in-context instruction on future interviews.
	Submit(ctx context.Context, interviewID, feedbackText string) error
}

type feedbackService struct {
	interviews pgrepo.InterviewRepo
	messages   pgrepo.MessageRepo
	feedback   pgrepo.FeedbackRepo
	llm        llm.Provider
	log        *logrus.Logger
	now        func() time.Time
}

func NewFeedbackService(
	interviews pgrepo.InterviewRepo,
	messages pgrepo.MessageRepo,
	feedback pgrepo.FeedbackRepo,
	provider llm.Provider,
	log *logrus.Logger,
) FeedbackService {
	return &feedbackService{
		interviews: interviews,
		messages:   messages,
		feedback:   feedback,
		llm:        provider,
		log:        log,
		now:        time.Now,
	}
}

func (s *feedbackService) Submit(ctx context.Context, interviewID, feedbackText string) error {
	const op = "FeedbackService.Submit"

	if interviewID == "" || feedbackText == "" {
		return utils.E(utils.CodeInvalidArgument, op, "interview_id and feedback_text are required", nil)
	}
	if _, err := s.interviews.GetByID(ctx, interviewID); err != nil {
		return utils.E(utils.CodeNotFound, op, "interview not found", err)
	}

	if err := s.feedback.Append(ctx, &models.AgentFeedback{
		ID:           uuid.NewString(),
		InterviewID:  interviewID,
		FeedbackText: feedbackText,
		CreatedAt:    s.now().UTC(),
	}); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save feedback", err)
	}

	msgs, err := s.messages.ListByInterview(ctx, interviewID)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}

	suggestion, err := agents.New(s.llm, "").Suggest(ctx, FormatTranscript(msgs), feedbackText)
	if err != nil {
		// the critique is already durable; a failed suggestion is only noise
		s.log.WithError(err).WithField("interview_id", interviewID).
			Warn("feedback suggestion generation failed")
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"interview_id": interviewID,
		"feedback":     feedbackText,
		"suggestion":   suggestion,
	}).Info("feedback analysis")
	return nil
}
