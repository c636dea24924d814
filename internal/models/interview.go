package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusStarted    = "started"
	StatusCompleted  = "completed"
	StatusTerminated = "terminated"
)

// TerminalStatus reports whether an interview can no longer accept turns.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusTerminated
}

type Interview struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateName string         `gorm:"column:candidate_name;type:text;index" json:"candidate_name"`
	Status        string         `gorm:"column:status;type:text;default:started" json:"status"`
	Warnings      int            `gorm:"column:warnings;default:0" json:"warnings"`
	Metadata      datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Interview) TableName() string { return "interviews" }
