package models

import "time"

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShoutoutID uint      `gorm:"index;not null" json:"shoutout_id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`

	// Nil when the author was deleted; rendered as "Deleted User".
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string { return "comments" }
