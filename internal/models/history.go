package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatExchange records one chat turn: the user question, the assistant
// answer, and the tool trace that produced it.
type ChatExchange struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *string        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	RequestID string         `gorm:"index" json:"request_id"`
	Sport     string         `json:"sport,omitempty"`
	Question  string         `gorm:"not null" json:"question"`
	Answer    string         `json:"answer"`
	ToolTrace datatypes.JSON `json:"tool_trace,omitempty"`
	Model     string         `json:"model,omitempty"`
	LatencyMs int64          `json:"latency_ms"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ChatExchange) TableName() string {
	return "chat_exchanges"
}

// InsightRecord stores a generated player comparison or analysis so it can
// be replayed without another model round trip.
type InsightRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *string        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Sport     string         `gorm:"not null" json:"sport"`
	Subject   string         `gorm:"not null" json:"subject"`
	Analysis  string         `json:"analysis"`
	Inputs    datatypes.JSON `json:"inputs,omitempty"`
	Fallback  bool           `gorm:"default:false" json:"fallback"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (InsightRecord) TableName() string {
	return "insight_records"
}
