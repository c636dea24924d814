package handlers

import (
	"net/http"

	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc services.ReportService
}

func NewReportHandler(svc services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) Get(c *gin.Context) {
	rep, err := h.svc.Get(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
