package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SimulationTurn struct {
	Sender string `bson:"sender" json:"sender"`
	Text   string `bson:"text" json:"text"`
}

// SimulationRun archives one self-play exchange for later review.
type SimulationRun struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID  string             `bson:"run_id" json:"run_id"` // uuid v4
	Status string             `bson:"status" json:"status"` // completed|failed
	Rounds int                `bson:"rounds" json:"rounds"`

	Turns []SimulationTurn `bson:"turns" json:"turns"`

	StartedAt   time.Time `bson:"started_at" json:"started_at"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}
