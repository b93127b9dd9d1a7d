package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrShoutOutNotFound = errors.New("shoutout not found")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrUnknownReaction  = errors.New("unknown reaction type")
)

type ShoutOutService struct {
	db *gorm.DB
}

func NewShoutOutService(db *gorm.DB) *ShoutOutService {
	return &ShoutOutService{db: db}
}

// Create persists a shout-out, then one recipient link per distinct
// recipient, excluding the sender. The two writes are sequential and not
// atomic: recipients are optional, so a post without links is acceptable.
func (s *ShoutOutService) Create(senderID uint, message string, recipientIDs []uint) (*models.ShoutOut, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	post := models.ShoutOut{
		Message:  message,
		SenderID: senderID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create shoutout: %w", err)
	}

	seen := make(map[uint]bool, len(recipientIDs))
	var links []models.ShoutOutRecipient
	for _, rid := range recipientIDs {
		if rid == senderID || seen[rid] {
			continue
		}
		seen[rid] = true
		links = append(links, models.ShoutOutRecipient{
			ShoutoutID:  post.ID,
			RecipientID: rid,
		})
	}

	if len(links) > 0 {
		if err := s.db.Create(&links).Error; err != nil {
			return nil, fmt.Errorf("failed to link recipients: %w", err)
		}
	}

	return &post, nil
}

// ListFilters narrows the feed. Zero values mean "no filter"; reported
// posts are included unless ExcludeReported is set.
type ListFilters struct {
	Departments     []string
	SenderID        uint
	From            *time.Time
	To              *time.Time
	ExcludeReported bool
}

// List returns shout-outs newest first with sender, recipients, reactions
// and comment authors eager-loaded.
func (s *ShoutOutService) List(f ListFilters) ([]models.ShoutOut, error) {
	q := s.db.Model(&models.ShoutOut{}).
		Preload("Sender").
		Preload("Recipients.Recipient").
		Preload("Reactions").
		Preload("Comments.User")

	if len(f.Departments) > 0 {
		q = q.Joins("JOIN users ON users.id = shoutouts.sender_id").
			Where("users.department IN ?", f.Departments)
	}
	if f.SenderID != 0 {
		q = q.Where("shoutouts.sender_id = ?", f.SenderID)
	}
	if f.From != nil {
		q = q.Where("shoutouts.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("shoutouts.created_at <= ?", *f.To)
	}
	if f.ExcludeReported {
		q = q.Where("shoutouts.is_reported = ?", false)
	}

	var posts []models.ShoutOut
	if err := q.Order("shoutouts.created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListForUser returns posts the user sent or was recognized in.
func (s *ShoutOutService) ListForUser(userID uint) ([]models.ShoutOut, error) {
	received := s.db.Model(&models.ShoutOutRecipient{}).
		Select("shoutout_id").
		Where("recipient_id = ?", userID)

	var posts []models.ShoutOut
	err := s.db.Model(&models.ShoutOut{}).
		Preload("Sender").
		Preload("Recipients.Recipient").
		Preload("Reactions").
		Preload("Comments.User").
		Where("shoutouts.sender_id = ? OR shoutouts.id IN (?)", userID, received).
		Order("shoutouts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleReaction adds the reaction if absent and removes it if present,
// keeping at most one row per (user, shoutout, type).
func (s *ShoutOutService) ToggleReaction(shoutoutID, userID uint, reactionType string) (string, error) {
	if !models.ValidReactionType(reactionType) {
		return "", ErrUnknownReaction
	}

	var post models.ShoutOut
	if err := s.db.First(&post, shoutoutID).Error; err != nil {
		return "", ErrShoutOutNotFound
	}

	var existing models.Reaction
	err := s.db.Where("shoutout_id = ? AND user_id = ? AND reaction_type = ?",
		shoutoutID, userID, reactionType).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return "", err
		}
		return "removed", nil
	}

	reaction := models.Reaction{
		ShoutoutID:   shoutoutID,
		UserID:       userID,
		ReactionType: reactionType,
	}
	if err := s.db.Create(&reaction).Error; err != nil {
		return "", err
	}
	return "added", nil
}

// AddComment inserts unconditionally and returns the comment with its
// author denormalized for immediate display.
func (s *ShoutOutService) AddComment(shoutoutID, userID uint, text string) (*models.Comment, error) {
	comment := models.Comment{
		ShoutoutID: shoutoutID,
		UserID:     userID,
		Text:       text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Report flags a post for moderation. The flag is shared: repeated reports
// by any user are idempotent.
func (s *ShoutOutService) Report(shoutoutID uint) error {
	var post models.ShoutOut
	if err := s.db.First(&post, shoutoutID).Error; err != nil {
		return ErrShoutOutNotFound
	}
	return s.db.Model(&post).Update("is_reported", true).Error
}

// BuildFeed assembles the API view of a post list. It tolerates orphaned
// references: posts whose sender was deleted are skipped, comments from
// deleted users fall back to "Deleted User", and unknown reaction types
// recorded before validation existed are ignored.
func BuildFeed(posts []models.ShoutOut) []dto.ShoutOutResponse {
	feed := make([]dto.ShoutOutResponse, 0, len(posts))
	for _, post := range posts {
		if post.Sender == nil {
			continue
		}

		recipients := make([]dto.RecipientResponse, 0, len(post.Recipients))
		for _, link := range post.Recipients {
			if link.Recipient == nil {
				continue
			}
			recipients = append(recipients, dto.RecipientResponse{
				ID:   link.Recipient.ID,
				Name: link.Recipient.Name,
			})
		}

		comments := make([]dto.CommentResponse, 0, len(post.Comments))
		for _, c := range post.Comments {
			author := dto.CommentAuthor{Name: "Deleted User"}
			if c.User != nil {
				author = dto.CommentAuthor{ID: c.User.ID, Name: c.User.Name}
			}
			comments = append(comments, dto.CommentResponse{
				ID:   c.ID,
				Text: c.Text,
				User: author,
			})
		}

		counts := map[string]int{
			models.ReactionLike: 0,
			models.ReactionClap: 0,
			models.ReactionStar: 0,
		}
		for _, r := range post.Reactions {
			if _, ok := counts[r.ReactionType]; ok {
				counts[r.ReactionType]++
			}
		}

		feed = append(feed, dto.ShoutOutResponse{
			ID:               post.ID,
			Message:          post.Message,
			Sender:           post.Sender.Name,
			SenderDepartment: post.Sender.Department,
			Recipients:       recipients,
			Comments:         comments,
			Reactions:        counts,
			CreatedAt:        post.CreatedAt,
			IsReported:       post.IsReported,
		})
	}
	return feed
}
