package handlers

import (
	"net/http"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/proctor"
	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/Perfect-Cube/Reflex/internal/vision"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type ProctorHandler struct {
	interviews services.InterviewService
	detector   vision.Detector
	log        *logrus.Logger
	upgrader   websocket.Upgrader
}

func NewProctorHandler(interviews services.InterviewService, detector vision.Detector, log *logrus.Logger) *ProctorHandler {
	return &ProctorHandler{
		interviews: interviews,
		detector:   detector,
		log:        log,
		upgrader: websocket.Upgrader{
			// browsers do not apply CORS to websocket upgrades; origin policy
			// is handled at the edge
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type proctorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

func writeEvent(conn *websocket.Conn, ev proctorEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(ev)
}

// ProctorWS accepts raw frame payloads over a persistent channel and emits
// warning/terminate events. Hysteresis state lives and dies with this
// connection; the escalation count is durable on the interview.
func (h *ProctorHandler) ProctorWS(c *gin.Context) {
	interviewID := c.Param("interview_id")

	if _, err := h.interviews.Get(c.Request.Context(), interviewID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	monitor := proctor.NewMonitor()
	log := h.log.WithField("interview_id", interviewID)

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			log.WithError(err).Info("proctoring connection closed")
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		warning := monitor.Observe(h.detector.Analyze(frame))
		if warning == "" {
			continue
		}

		count, recorded, err := h.interviews.RecordWarning(ctx, interviewID)
		if err != nil {
			log.WithError(err).Error("failed to record proctoring warning")
			continue
		}
		if !recorded {
			// already terminal, nothing more to watch
			_ = writeEvent(conn, proctorEvent{Type: "terminate", Message: proctor.TerminateMessage})
			return
		}

		if err := writeEvent(conn, proctorEvent{Type: "warning", Message: warning, Count: count}); err != nil {
			return
		}

		if count >= proctor.MaxWarnings {
			if err := h.interviews.Terminate(ctx, interviewID); err != nil {
				log.WithError(err).Error("failed to terminate interview")
			}
			_ = writeEvent(conn, proctorEvent{Type: "terminate", Message: proctor.TerminateMessage})
			return
		}
	}
}
