package models

import "time"

// Audit action codes.
const (
	ActionDeletedShoutout = "DELETED_SHOUTOUT"
	ActionDeletedUser     = "DELETED_USER"
	ActionCreatedAdmin    = "CREATED_ADMIN"
	ActionCreatedEmployee = "CREATED_EMPLOYEE"
)

// AdminLog is an append-only audit record of privileged actions. Rows are
// only ever inserted, never updated or deleted.
type AdminLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AdminID    uint      `gorm:"index;not null" json:"admin_id"`
	Action     string    `gorm:"size:100;not null" json:"action"`
	TargetID   *uint     `json:"target_id,omitempty"`
	TargetType string    `gorm:"size:50" json:"target_type,omitempty"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (AdminLog) TableName() string { return "admin_logs" }
