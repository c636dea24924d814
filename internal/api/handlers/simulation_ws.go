package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Perfect-Cube/Reflex/internal/agents"
	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type SimulationHandler struct {
	simulations services.SimulationService
	log         *logrus.Logger
	upgrader    websocket.Upgrader
}

func NewSimulationHandler(simulations services.SimulationService, log *logrus.Logger) *SimulationHandler {
	return &SimulationHandler{
		simulations: simulations,
		log:         log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type simTurnPayload struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type simEvent struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Data    *simTurnPayload `json:"data,omitempty"`
}

// wsSimConsumer streams replayed turns over a websocket connection.
type wsSimConsumer struct {
	conn *websocket.Conn
}

func (w *wsSimConsumer) write(ev simEvent) error {
	_ = w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.conn.WriteJSON(ev)
}

func (w *wsSimConsumer) Turn(turn agents.SimTurn) error {
	return w.write(simEvent{
		Type: "turn",
		Data: &simTurnPayload{Sender: turn.Sender, Text: turn.Text},
	})
}

func (w *wsSimConsumer) Complete() error {
	return w.write(simEvent{Type: "complete", Message: "Simulation finished."})
}

func (h *SimulationHandler) SimulationWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	consumer := &wsSimConsumer{conn: conn}
	if err := h.simulations.Run(c.Request.Context(), consumer); err != nil {
		h.log.WithError(err).Error("simulation run failed")
		_ = consumer.write(simEvent{
			Type:    "error",
			Message: "An unexpected error occurred during the simulation.",
		})
	}
}

func (h *SimulationHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	runs, err := h.simulations.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulations": runs})
}
