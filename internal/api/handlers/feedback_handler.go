package handlers

import (
	"net/http"

	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	svc services.FeedbackService
}

func NewFeedbackHandler(svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type FeedbackRequest struct {
	InterviewID  string `json:"interview_id" binding:"required"`
	FeedbackText string `json:"feedback_text" binding:"required"`
}

type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FeedbackHandler.Submit", "invalid request body", err))
		return
	}

	if err := h.svc.Submit(c.Request.Context(), req.InterviewID, req.FeedbackText); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, FeedbackResponse{
		Status:  "success",
		Message: "Feedback processed and logged for agent improvement.",
	})
}
