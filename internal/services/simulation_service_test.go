package services

import (
	"context"
	"testing"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/logger"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingConsumer struct {
	turns    []agents.SimTurn
	complete bool
}

func (c *collectingConsumer) Turn(t agents.SimTurn) error {
	c.turns = append(c.turns, t)
	return nil
}

func (c *collectingConsumer) Complete() error {
	c.complete = true
	return nil
}

type memorySimRepo struct {
	runs []models.SimulationRun
}

func (r *memorySimRepo) Insert(_ context.Context, run *models.SimulationRun) error {
	r.runs = append(r.runs, *run)
	return nil
}

func (r *memorySimRepo) ListRecent(_ context.Context, limit int) ([]models.SimulationRun, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	out := make([]models.SimulationRun, limit)
	copy(out, r.runs)
	return out, nil
}

func newSimService(p *scriptedProvider, repo *memorySimRepo) *simulationService {
	var svc SimulationService
	if repo != nil {
		svc = NewSimulationService(p, repo, logger.New())
	} else {
		svc = NewSimulationService(p, nil, logger.New())
	}
	s := svc.(*simulationService)
	s.pause = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	s.delay = func(min, _ time.Duration) time.Duration { return min }
	return s
}

func simulationReplies() map[string][]string {
	return map[string][]string{
		"candidate":   {"a1", "a2", "a3", "a4"},
		"interviewer": {"q2", "q3", "q4"},
	}
}

func TestRunReplaysTranscriptThenCompletes(t *testing.T) {
	p := &scriptedProvider{replies: simulationReplies()}
	repo := &memorySimRepo{}
	svc := newSimService(p, repo)

	consumer := &collectingConsumer{}
	require.NoError(t, svc.Run(context.Background(), consumer))

	require.Len(t, consumer.turns, 8)
	assert.True(t, consumer.complete)
	assert.Equal(t, agents.SenderInterviewer, consumer.turns[0].Sender)
	assert.Equal(t, agents.SenderCandidate, consumer.turns[1].Sender)

	// the finished run was archived
	require.Len(t, repo.runs, 1)
	run := repo.runs[0]
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 8, run.Rounds)
	assert.Len(t, run.Turns, 8)
	assert.NotEmpty(t, run.RunID)
}

func TestRunSurfacesModelFailure(t *testing.T) {
	p := &scriptedProvider{replies: map[string][]string{}} // no scripted replies
	svc := newSimService(p, nil)

	consumer := &collectingConsumer{}
	err := svc.Run(context.Background(), consumer)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.Empty(t, consumer.turns)
	assert.False(t, consumer.complete)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	p := &scriptedProvider{replies: simulationReplies()}
	svc := newSimService(p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Run(ctx, &collectingConsumer{})
	assert.Error(t, err)
}

func TestListRecentWithArchiveDisabled(t *testing.T) {
	p := &scriptedProvider{replies: map[string][]string{}}
	svc := newSimService(p, nil)

	runs, err := svc.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
