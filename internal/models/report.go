package models

import "time"

// Report is one-to-one with an interview; the unique index enforces it.
type Report struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InterviewID string    `gorm:"column:interview_id;type:uuid;uniqueIndex" json:"interview_id"`
	Score       int       `gorm:"column:score" json:"score"`
	Summary     string    `gorm:"column:summary;type:text" json:"summary"`
	Strengths   string    `gorm:"column:strengths;type:text" json:"strengths"`
	Weaknesses  string    `gorm:"column:weaknesses;type:text" json:"weaknesses"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Report) TableName() string { return "reports" }
