package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Perfect-Cube/Reflex/internal/cache"
	"github.com/Perfect-Cube/Reflex/internal/logger"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	pgrepo "github.com/Perfect-Cube/Reflex/internal/repositories/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// scriptedProvider returns canned replies per role name and records calls.
type scriptedProvider struct {
	replies map[string][]string
	calls   []scriptedCall
	err     error
}

type scriptedCall struct {
	role    llm.RoleConfig
	history []llm.ChatMessage
}

func (p *scriptedProvider) Generate(_ context.Context, role llm.RoleConfig, history []llm.ChatMessage) (string, error) {
	p.calls = append(p.calls, scriptedCall{role: role, history: history})
	if p.err != nil {
		return "", p.err
	}
	q := p.replies[role.Name]
	if len(q) == 0 {
		return "", errors.New("no scripted reply for " + role.Name)
	}
	reply := q[0]
	p.replies[role.Name] = q[1:]
	return reply, nil
}

func (p *scriptedProvider) Close() error { return nil }

func (p *scriptedProvider) callsFor(role string) []scriptedCall {
	var out []scriptedCall
	for _, c := range p.calls {
		if c.role.Name == role {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	db         *gorm.DB
	provider   *scriptedProvider
	interviews pgrepo.InterviewRepo
	messages   pgrepo.MessageRepo
	reports    pgrepo.ReportRepo
	feedback   pgrepo.FeedbackRepo

	interviewSvc InterviewService
	reportSvc    ReportService
	feedbackSvc  FeedbackService
}

func newFixture(t *testing.T, provider *scriptedProvider, c cache.Cache) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Interview{}, &models.Message{}, &models.Report{}, &models.AgentFeedback{},
	))

	log := logger.New()
	f := &fixture{
		db:         db,
		provider:   provider,
		interviews: pgrepo.NewInterviewRepo(db),
		messages:   pgrepo.NewMessageRepo(db),
		reports:    pgrepo.NewReportRepo(db),
		feedback:   pgrepo.NewFeedbackRepo(db),
	}
	f.reportSvc = NewReportService(f.interviews, f.messages, f.reports, c, provider, log)
	f.interviewSvc = NewInterviewService(f.interviews, f.messages, f.feedback, provider, f.reportSvc, log)
	f.feedbackSvc = NewFeedbackService(f.interviews, f.messages, f.feedback, provider, log)
	return f
}
