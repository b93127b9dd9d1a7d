package dto

import "time"

type CreateShoutOutRequest struct {
	Message      string `json:"message"`
	RecipientIDs []uint `json:"recipient_ids"`
}

// ShoutOutCreatedResponse is the 201 body for a freshly created post,
// before any recipients/reactions/comments are attached to the view.
type ShoutOutCreatedResponse struct {
	ID         uint      `json:"id"`
	Message    string    `json:"message"`
	SenderID   uint      `json:"sender_id"`
	CreatedAt  time.Time `json:"created_at"`
	IsReported bool      `json:"is_reported"`
}

type RecipientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentAuthor struct {
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name"`
}

type CommentResponse struct {
	ID   uint          `json:"id"`
	Text string        `json:"text"`
	User CommentAuthor `json:"user"`
}

// ShoutOutResponse is one entry of the feed: sender and recipients resolved
// to names, reactions collapsed into per-type counts.
type ShoutOutResponse struct {
	ID               uint                `json:"id"`
	Message          string              `json:"message"`
	Sender           string              `json:"sender"`
	SenderDepartment string              `json:"sender_department"`
	Recipients       []RecipientResponse `json:"recipients"`
	Comments         []CommentResponse   `json:"comments"`
	Reactions        map[string]int      `json:"reactions"`
	CreatedAt        time.Time           `json:"created_at"`
	IsReported       bool                `json:"is_reported"`
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

type ReactionToggleResponse struct {
	Action string `json:"action"` // "added" or "removed"
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
