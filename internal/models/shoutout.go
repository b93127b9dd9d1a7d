package models

import "time"

// ShoutOut is a recognition post. Sender is loaded defensively: legacy rows
// may reference a deleted user, and read paths skip or fall back rather
// than fail.
type ShoutOut struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	SenderID   uint      `gorm:"index" json:"sender_id"`
	CreatedAt  time.Time `json:"created_at"`
	IsReported bool      `gorm:"not null;default:false" json:"is_reported"`

	Sender     *User               `gorm:"foreignKey:SenderID" json:"-"`
	Recipients []ShoutOutRecipient `gorm:"foreignKey:ShoutoutID" json:"-"`
	Reactions  []Reaction          `gorm:"foreignKey:ShoutoutID" json:"-"`
	Comments   []Comment           `gorm:"foreignKey:ShoutoutID" json:"-"`
}

func (ShoutOut) TableName() string { return "shoutouts" }

// ShoutOutRecipient resolves the many-to-many link between a shout-out and
// the users it recognizes. A link never targets the post's own sender.
type ShoutOutRecipient struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ShoutoutID  uint `gorm:"index;not null" json:"shoutout_id"`
	RecipientID uint `gorm:"index;not null" json:"recipient_id"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (ShoutOutRecipient) TableName() string { return "shoutout_recipients" }
