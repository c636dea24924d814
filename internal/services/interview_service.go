package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	pgrepo "github.com/Perfect-Cube/Reflex/internal/repositories/postgres"
	"github.com/Perfect-Cube/Reflex/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// feedbackContextSize is how many recent admin critiques are folded into the
// interviewer's instructions.
const feedbackContextSize = 5

type InterviewService interface {
	// Start creates the interview and returns it together with the opening AI
	// message, which is already persisted as the first message.
	Start(ctx context.Context, candidateName string, metadata []byte) (*models.Interview, string, error)
	// HandleTurn persists the user message, replays the full history to the
	// interviewer, persists the reply, and reports whether the interview just
	// completed.
	HandleTurn(ctx context.Context, interviewID, userText string) (reply string, terminated bool, err error)
	Get(ctx context.Context, interviewID string) (*models.Interview, error)
	List(ctx context.Context) ([]models.Interview, error)
	Transcript(ctx context.Context, interviewID string) ([]models.Message, error)
	// RecordWarning durably increments the warning count; recorded=false means
	// the interview is already terminal and nothing was written.
	RecordWarning(ctx context.Context, interviewID string) (count int, recorded bool, err error)
	Terminate(ctx context.Context, interviewID string) error
}

type interviewService struct {
	interviews pgrepo.InterviewRepo
	messages   pgrepo.MessageRepo
	feedback   pgrepo.FeedbackRepo
	llm        llm.Provider
	reports    ReportService
	log        *logrus.Logger
	now        func() time.Time
}

func NewInterviewService(
	interviews pgrepo.InterviewRepo,
	messages pgrepo.MessageRepo,
	feedback pgrepo.FeedbackRepo,
	provider llm.Provider,
	reports ReportService,
	log *logrus.Logger,
) InterviewService {
	return &interviewService{
		interviews: interviews,
		messages:   messages,
		feedback:   feedback,
		llm:        provider,
		reports:    reports,
		log:        log,
		now:        time.Now,
	}
}

// orchestrator builds a fresh orchestrator seeded with the rolling feedback
// context. The orchestrator itself is stateless; continuity lives in the
// persisted message log.
func (s *interviewService) orchestrator(ctx context.Context) (*agents.Orchestrator, error) {
	records, err := s.feedback.LatestN(ctx, feedbackContextSize)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(records))
	for _, fb := range records {
		texts = append(texts, fb.FeedbackText)
	}
	return agents.New(s.llm, strings.Join(texts, "\n- ")), nil
}

func (s *interviewService) Start(ctx context.Context, candidateName string, metadata []byte) (*models.Interview, string, error) {
	const op = "InterviewService.Start"

	if strings.TrimSpace(candidateName) == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "candidate_name is required", nil)
	}

	orch, err := s.orchestrator(ctx)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load feedback context", err)
	}

	iv := &models.Interview{
		ID:            uuid.NewString(),
		CandidateName: candidateName,
		Status:        models.StatusStarted,
		Metadata:      datatypes.JSON(metadata),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}

	opening, err := orch.OpeningMessage(ctx, candidateName)
	if err != nil {
		return nil, "", utils.E(utils.CodeUnavailable, op, "failed to generate opening message", err)
	}

	if err := s.appendMessage(ctx, iv.ID, models.SenderAI, opening); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to save opening message", err)
	}
	return iv, opening, nil
}

func (s *interviewService) HandleTurn(ctx context.Context, interviewID, userText string) (string, bool, error) {
	const op = "InterviewService.HandleTurn"

	if userText == "" {
		return "", false, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	if _, err := s.Get(ctx, interviewID); err != nil {
		return "", false, err
	}

	if err := s.appendMessage(ctx, interviewID, models.SenderUser, userText); err != nil {
		return "", false, utils.E(utils.CodeInternal, op, "failed to save user message", err)
	}

	// history replay is the source of truth
	history, err := s.chatHistory(ctx, interviewID)
	if err != nil {
		return "", false, utils.E(utils.CodeInternal, op, "failed to load history", err)
	}

	orch, err := s.orchestrator(ctx)
	if err != nil {
		return "", false, utils.E(utils.CodeInternal, op, "failed to load feedback context", err)
	}

	reply, err := orch.NextReply(ctx, history)
	if err != nil {
		return "", false, utils.E(utils.CodeUnavailable, op, "failed to generate reply", err)
	}

	if err := s.appendMessage(ctx, interviewID, models.SenderAI, reply); err != nil {
		return "", false, utils.E(utils.CodeInternal, op, "failed to save ai message", err)
	}

	terminated := agents.Terminated(reply)
	if terminated {
		if err := s.interviews.SetStatus(ctx, interviewID, models.StatusCompleted); err != nil {
			return "", false, utils.E(utils.CodeInternal, op, "failed to complete interview", err)
		}
		// report generation is best-effort here; the read path regenerates on
		// demand for terminal interviews
		if _, err := s.reports.Generate(ctx, interviewID); err != nil {
			s.log.WithError(err).WithField("interview_id", interviewID).
				Warn("report generation after termination failed")
		}
	}
	return reply, terminated, nil
}

func (s *interviewService) Get(ctx context.Context, interviewID string) (*models.Interview, error) {
	const op = "InterviewService.Get"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get interview", err)
	}
	return iv, nil
}

func (s *interviewService) List(ctx context.Context) ([]models.Interview, error) {
	const op = "InterviewService.List"

	rows, err := s.interviews.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return rows, nil
}

func (s *interviewService) Transcript(ctx context.Context, interviewID string) ([]models.Message, error) {
	const op = "InterviewService.Transcript"

	rows, err := s.messages.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}
	if len(rows) == 0 {
		return nil, utils.E(utils.CodeNotFound, op, "interview not found or has no messages", nil)
	}
	return rows, nil
}

func (s *interviewService) RecordWarning(ctx context.Context, interviewID string) (int, bool, error) {
	const op = "InterviewService.RecordWarning"

	count, recorded, err := s.interviews.IncrementWarnings(ctx, interviewID)
	if err != nil {
		return 0, false, utils.E(utils.CodeInternal, op, "failed to record warning", err)
	}
	return count, recorded, nil
}

func (s *interviewService) Terminate(ctx context.Context, interviewID string) error {
	const op = "InterviewService.Terminate"

	if err := s.interviews.SetStatus(ctx, interviewID, models.StatusTerminated); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to terminate interview", err)
	}
	return nil
}

func (s *interviewService) appendMessage(ctx context.Context, interviewID, sender, text string) error {
	return s.messages.Append(ctx, &models.Message{
		InterviewID: interviewID,
		Sender:      sender,
		Text:        text,
		CreatedAt:   s.now().UTC(),
	})
}

// chatHistory maps the persisted log into provider wire format, preserving
// order: ai becomes assistant, user stays user.
func (s *interviewService) chatHistory(ctx context.Context, interviewID string) ([]llm.ChatMessage, error) {
	rows, err := s.messages.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	history := make([]llm.ChatMessage, 0, len(rows))
	for _, msg := range rows {
		role := llm.RoleUser
		if msg.Sender == models.SenderAI {
			role = llm.RoleAssistant
		}
		history = append(history, llm.ChatMessage{Role: role, Content: msg.Text})
	}
	return history, nil
}
