package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	mongorepo "github.com/Perfect-Cube/Reflex/internal/repositories/mongo"
	"github.com/Perfect-Cube/Reflex/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SimulationConsumer receives the replayed transcript turn by turn.
type SimulationConsumer interface {
	Turn(turn agents.SimTurn) error
	Complete() error
}

type SimulationService interface {
	// Run plays a full self-play exchange, then replays it to the consumer
	// with per-turn pacing and a completion signal.
	Run(ctx context.Context, consumer SimulationConsumer) error
	ListRecent(ctx context.Context, limit int) ([]models.SimulationRun, error)
}

type simulationService struct {
	llm  llm.Provider
	runs mongorepo.SimulationRepository // nil when the archive is disabled
	log  *logrus.Logger

	pause func(ctx context.Context, d time.Duration) error
	delay func(min, max time.Duration) time.Duration
}

func NewSimulationService(provider llm.Provider, runs mongorepo.SimulationRepository, log *logrus.Logger) SimulationService {
	return &simulationService{
		llm:   provider,
		runs:  runs,
		log:   log,
		pause: sleepCtx,
		delay: randomDelay,
	}
}

func (s *simulationService) Run(ctx context.Context, consumer SimulationConsumer) error {
	const op = "SimulationService.Run"
	startedAt := time.Now().UTC()

	turns, err := agents.New(s.llm, "").RunSimulation(ctx)
	if err != nil {
		s.archive(startedAt, "failed", nil)
		return utils.E(utils.CodeUnavailable, op, "simulation failed", err)
	}

	for _, turn := range turns {
		// candidate "thinking time" is longer than the interviewer's pause
		var d time.Duration
		if turn.Sender == agents.SenderCandidate {
			d = s.delay(2500*time.Millisecond, 4500*time.Millisecond)
		} else {
			d = s.delay(1500*time.Millisecond, 2500*time.Millisecond)
		}
		if err := s.pause(ctx, d); err != nil {
			return err
		}
		if err := consumer.Turn(turn); err != nil {
			return err
		}
	}

	if err := s.pause(ctx, time.Second); err != nil {
		return err
	}
	if err := consumer.Complete(); err != nil {
		return err
	}

	s.archive(startedAt, "completed", turns)
	return nil
}

func (s *simulationService) ListRecent(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	const op = "SimulationService.ListRecent"

	if s.runs == nil {
		return []models.SimulationRun{}, nil
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list simulation runs", err)
	}
	return runs, nil
}

// archive is best-effort: a down archive never fails a simulation the client
// already watched.
func (s *simulationService) archive(startedAt time.Time, status string, turns []agents.SimTurn) {
	if s.runs == nil {
		return
	}

	archived := make([]models.SimulationTurn, 0, len(turns))
	for _, t := range turns {
		archived = append(archived, models.SimulationTurn{Sender: t.Sender, Text: t.Text})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.runs.Insert(ctx, &models.SimulationRun{
		RunID:       uuid.NewString(),
		Status:      status,
		Rounds:      len(turns),
		Turns:       archived,
		StartedAt:   startedAt,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.WithError(err).Warn("failed to archive simulation run")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomDelay(min, max time.Duration) time.Duration {
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
