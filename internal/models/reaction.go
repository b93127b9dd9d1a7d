package models

import "time"

// Known reaction types. Anything else is rejected at the boundary.
const (
	ReactionLike = "like"
	ReactionClap = "clap"
	ReactionStar = "star"
)

var ReactionTypes = []string{ReactionLike, ReactionClap, ReactionStar}

func ValidReactionType(t string) bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Reaction is a per-user toggled sentiment marker. At most one row exists
// per (user, shoutout, type); toggling an existing one deletes it.
type Reaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ShoutoutID   uint      `gorm:"not null;uniqueIndex:idx_reactions_user_post_type" json:"shoutout_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_reactions_user_post_type" json:"user_id"`
	ReactionType string    `gorm:"size:20;not null;uniqueIndex:idx_reactions_user_post_type" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Reaction) TableName() string { return "reactions" }
