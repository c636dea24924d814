package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Perfect-Cube/Reflex/internal/logger"
	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"github.com/Perfect-Cube/Reflex/internal/vision"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeInterviewService struct {
	interview   *models.Interview
	opening     string
	reply       string
	terminated  bool
	transcript  []models.Message
	warnings    int
	startErr    error
	turnErr     error
	terminateID string
}

func (f *fakeInterviewService) Start(ctx context.Context, candidateName string, metadata []byte) (*models.Interview, string, error) {
	if f.startErr != nil {
		return nil, "", f.startErr
	}
	return f.interview, f.opening, nil
}

func (f *fakeInterviewService) HandleTurn(ctx context.Context, interviewID, userText string) (string, bool, error) {
	if f.turnErr != nil {
		return "", false, f.turnErr
	}
	return f.reply, f.terminated, nil
}

func (f *fakeInterviewService) Get(ctx context.Context, interviewID string) (*models.Interview, error) {
	if f.interview == nil || f.interview.ID != interviewID {
		return nil, utils.E(utils.CodeNotFound, "fake.Get", "interview not found", nil)
	}
	return f.interview, nil
}

func (f *fakeInterviewService) List(ctx context.Context) ([]models.Interview, error) {
	if f.interview == nil {
		return []models.Interview{}, nil
	}
	return []models.Interview{*f.interview}, nil
}

func (f *fakeInterviewService) Transcript(ctx context.Context, interviewID string) ([]models.Message, error) {
	if f.interview == nil || f.interview.ID != interviewID {
		return nil, utils.E(utils.CodeNotFound, "fake.Transcript", "interview not found", nil)
	}
	return f.transcript, nil
}

func (f *fakeInterviewService) RecordWarning(ctx context.Context, interviewID string) (int, bool, error) {
	if f.interview != nil && models.TerminalStatus(f.interview.Status) {
		return f.warnings, false, nil
	}
	f.warnings++
	return f.warnings, true, nil
}

func (f *fakeInterviewService) Terminate(ctx context.Context, interviewID string) error {
	f.terminateID = interviewID
	if f.interview != nil {
		f.interview.Status = models.StatusTerminated
	}
	return nil
}

type fakeReportService struct {
	report *models.Report
	err    error
}

func (f *fakeReportService) Get(ctx context.Context, interviewID string) (*models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeReportService) Generate(ctx context.Context, interviewID string) (*models.Report, error) {
	return f.Get(ctx, interviewID)
}

type fakeFeedbackService struct {
	gotInterviewID string
	gotText        string
	err            error
}

func (f *fakeFeedbackService) Submit(ctx context.Context, interviewID, feedbackText string) error {
	f.gotInterviewID = interviewID
	f.gotText = feedbackText
	return f.err
}

func newTestRouter(t *testing.T, ivs *fakeInterviewService, rps *fakeReportService, fbs *fakeFeedbackService, det vision.Detector) *gin.Engine {
	t.Helper()

	log := logger.New()
	interview := NewInterviewHandler(ivs)
	report := NewReportHandler(rps)
	feedback := NewFeedbackHandler(fbs)
	proctor := NewProctorHandler(ivs, det, log)

	// mirrors the route table in internal/api/routes; registered inline so
	// the test package does not import its own importer
	r := gin.New()
	api := r.Group("/api")
	api.POST("/interview/start", interview.Start)
	api.POST("/interview/:interview_id/chat", interview.Chat)
	api.GET("/interviews", interview.List)
	api.GET("/interview/:interview_id/transcript", interview.Transcript)
	api.GET("/report/:interview_id", report.Get)
	api.POST("/feedback", feedback.Submit)
	api.GET("/ws/proctoring/:interview_id", proctor.ProctorWS)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartInterview(t *testing.T) {
	ivs := &fakeInterviewService{
		interview: &models.Interview{ID: "iv-1", CandidateName: "Jordan", Status: models.StatusStarted},
		opening:   "Hello Jordan, shall we begin?",
	}
	r := newTestRouter(t, ivs, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/interview/start", `{"candidate_name":"Jordan"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StartInterviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "iv-1", resp.InterviewID)
	assert.Equal(t, "Hello Jordan, shall we begin?", resp.Message)
}

func TestStartInterviewRequiresName(t *testing.T) {
	r := newTestRouter(t, &fakeInterviewService{}, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/interview/start", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, utils.CodeInvalidArgument, apiErr.Code)
}

func TestChat(t *testing.T) {
	ivs := &fakeInterviewService{
		interview:  &models.Interview{ID: "iv-1", Status: models.StatusStarted},
		reply:      "Good. Now explain VLOOKUP.",
		terminated: false,
	}
	r := newTestRouter(t, ivs, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/interview/iv-1/chat", `{"message":"A PivotTable summarizes data."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Good. Now explain VLOOKUP.", resp.Message)
	assert.False(t, resp.IsTerminated)
}

func TestChatRequiresMessage(t *testing.T) {
	r := newTestRouter(t, &fakeInterviewService{}, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/interview/iv-1/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatUnknownInterview(t *testing.T) {
	ivs := &fakeInterviewService{
		turnErr: utils.E(utils.CodeNotFound, "fake.HandleTurn", "interview not found", nil),
	}
	r := newTestRouter(t, ivs, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/interview/nope/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranscript(t *testing.T) {
	ivs := &fakeInterviewService{
		interview: &models.Interview{ID: "iv-1", Status: models.StatusCompleted},
		transcript: []models.Message{
			{ID: 1, InterviewID: "iv-1", Sender: models.SenderAI, Text: "Hello."},
			{ID: 2, InterviewID: "iv-1", Sender: models.SenderUser, Text: "Hi."},
		},
	}
	r := newTestRouter(t, ivs, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodGet, "/api/interview/iv-1/transcript", "")
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderAI, msgs[0].Sender)
}

func TestGetReport(t *testing.T) {
	rps := &fakeReportService{
		report: &models.Report{InterviewID: "iv-1", Score: 82, Summary: "Solid."},
	}
	r := newTestRouter(t, &fakeInterviewService{}, rps, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodGet, "/api/report/iv-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rep models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 82, rep.Score)
}

func TestGetReportConflict(t *testing.T) {
	rps := &fakeReportService{
		err: utils.E(utils.CodeConflict, "fake.Get", "interview still in progress", nil),
	}
	r := newTestRouter(t, &fakeInterviewService{}, rps, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodGet, "/api/report/iv-1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitFeedback(t *testing.T) {
	fbs := &fakeFeedbackService{}
	r := newTestRouter(t, &fakeInterviewService{}, &fakeReportService{}, fbs, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/feedback", `{"interview_id":"iv-1","feedback_text":"Ask harder questions."}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "iv-1", fbs.gotInterviewID)
	assert.Equal(t, "Ask harder questions.", fbs.gotText)

	var resp FeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Feedback processed and logged for agent improvement.", resp.Message)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	r := newTestRouter(t, &fakeInterviewService{}, &fakeReportService{}, &fakeFeedbackService{}, stubDetector{})

	w := doJSON(t, r, http.MethodPost, "/api/feedback", `{"interview_id":"iv-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
