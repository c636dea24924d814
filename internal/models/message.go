package models

import "time"

const (
	SenderAI   = "ai"
	SenderUser = "user"
)

// Message rows are append-only; the auto-incremented ID carries conversation
// order.
type Message struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InterviewID string    `gorm:"column:interview_id;type:uuid;index" json:"interview_id"`
	Sender      string    `gorm:"column:sender;type:text" json:"sender"` // "ai" | "user"
	Text        string    `gorm:"column:text;type:text" json:"text"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
