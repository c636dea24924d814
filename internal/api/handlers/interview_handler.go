package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	svc services.InterviewService
}

func NewInterviewHandler(svc services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type StartInterviewRequest struct {
	CandidateName string          `json:"candidate_name" binding:"required"`
	Metadata      json.RawMessage `json:"metadata"`
}

type StartInterviewResponse struct {
	InterviewID string `json:"interviewId"`
	Message     string `json:"message"`
}

func (h *InterviewHandler) Start(c *gin.Context) {
	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Start", "invalid request body", err))
		return
	}

	iv, opening, err := h.svc.Start(c.Request.Context(), req.CandidateName, req.Metadata)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartInterviewResponse{
		InterviewID: iv.ID,
		Message:     opening,
	})
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Message      string `json:"message"`
	IsTerminated bool   `json:"isTerminated"`
}

func (h *InterviewHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Chat", "invalid request body", err))
		return
	}

	reply, terminated, err := h.svc.HandleTurn(c.Request.Context(), c.Param("interview_id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Message: reply, IsTerminated: terminated})
}

func (h *InterviewHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *InterviewHandler) Transcript(c *gin.Context) {
	rows, err := h.svc.Transcript(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
