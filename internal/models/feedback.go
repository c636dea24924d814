package models

import "time"

// AgentFeedback is an append-only log of admin critiques. The most recent
// entries are folded into the interviewer's instructions on later interviews.
type AgentFeedback struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InterviewID  string    `gorm:"column:interview_id;type:uuid;index" json:"interview_id"`
	FeedbackText string    `gorm:"column:feedback_text;type:text" json:"feedback_text"`
	CreatedAt    time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (AgentFeedback) TableName() string { return "agent_feedback" }
