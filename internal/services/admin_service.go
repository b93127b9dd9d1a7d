package services

import (
	"errors"
	"fmt"

	"github.com/bragboard/bragboard-api/internal/config"
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"gorm.io/gorm"
)

var ErrSelfDelete = errors.New("you cannot delete your own admin account")

type AdminService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, cfg: cfg}
}

// Stats aggregates engagement numbers for the dashboard: totals, top five
// givers and most-tagged recipients, per-department counts grouped by the
// sender's department, and the moderation queue.
func (s *AdminService) Stats() (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{
		TopGivers:       []dto.NameCount{},
		MostTagged:      []dto.NameCount{},
		DepartmentStats: map[string]int64{},
		ReportedPosts:   []dto.ReportedPost{},
	}

	if err := s.db.Model(&models.ShoutOut{}).Count(&stats.TotalShoutouts).Error; err != nil {
		return nil, err
	}

	err := s.db.Model(&models.User{}).
		Select("users.name AS name, COUNT(shoutouts.id) AS count").
		Joins("JOIN shoutouts ON shoutouts.sender_id = users.id").
		Group("users.id, users.name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopGivers).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.User{}).
		Select("users.name AS name, COUNT(shoutout_recipients.id) AS count").
		Joins("JOIN shoutout_recipients ON shoutout_recipients.recipient_id = users.id").
		Group("users.id, users.name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.MostTagged).Error
	if err != nil {
		return nil, err
	}

	var deptRows []dto.NameCount
	err = s.db.Model(&models.User{}).
		Select("users.department AS name, COUNT(shoutouts.id) AS count").
		Joins("JOIN shoutouts ON shoutouts.sender_id = users.id").
		Group("users.department").
		Scan(&deptRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range deptRows {
		stats.DepartmentStats[row.Name] = row.Count
	}

	var reported []models.ShoutOut
	if err := s.db.Preload("Sender").Where("is_reported = ?", true).Find(&reported).Error; err != nil {
		return nil, err
	}
	for _, post := range reported {
		sender := "Deleted User"
		if post.Sender != nil {
			sender = post.Sender.Name
		}
		stats.ReportedPosts = append(stats.ReportedPosts, dto.ReportedPost{
			ID:      post.ID,
			Message: post.Message,
			Sender:  sender,
		})
	}

	return stats, nil
}

// AllShoutOuts returns every post with its sender for the CSV export.
func (s *AdminService) AllShoutOuts() ([]models.ShoutOut, error) {
	var posts []models.ShoutOut
	if err := s.db.Preload("Sender").Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteShoutOut removes a post and everything hanging off it. The audit
// entry is written in the same transaction, before the removal.
func (s *AdminService) DeleteShoutOut(adminID, shoutoutID uint) error {
	var post models.ShoutOut
	if err := s.db.First(&post, shoutoutID).Error; err != nil {
		return ErrShoutOutNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		log := models.AdminLog{
			AdminID:    adminID,
			Action:     models.ActionDeletedShoutout,
			TargetID:   &shoutoutID,
			TargetType: "shoutout",
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}
		if err := tx.Where("shoutout_id = ?", shoutoutID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shoutout_id = ?", shoutoutID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shoutout_id = ?", shoutoutID).Delete(&models.ShoutOutRecipient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// DismissReport clears the moderation flag. Like delete, a missing post is
// NotFound.
func (s *AdminService) DismissReport(shoutoutID uint) error {
	var post models.ShoutOut
	if err := s.db.First(&post, shoutoutID).Error; err != nil {
		return ErrShoutOutNotFound
	}
	return s.db.Model(&post).Update("is_reported", false).Error
}

// CreateUser is the dashboard variant of registration: the admin role comes
// from the explicit flag or the configured secret, and the grant is audited.
func (s *AdminService) CreateUser(adminID uint, req *dto.CreateUserRequest, isAdminFlag bool) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleEmployee
	action := models.ActionCreatedEmployee
	if isAdminFlag || (s.cfg.AdminSecret != "" && req.AdminSecret == s.cfg.AdminSecret) {
		role = models.RoleAdmin
		action = models.ActionCreatedAdmin
	}

	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Department: req.Department,
		Role:       role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		log := models.AdminLog{
			AdminID:    adminID,
			Action:     action,
			TargetID:   &user.ID,
			TargetType: "user",
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// DeleteUser removes an account and cascades to everything it owns,
// including its sent shout-outs and their children. Admins cannot delete
// themselves.
func (s *AdminService) DeleteUser(adminID, userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}
	if user.ID == adminID {
		return ErrSelfDelete
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		log := models.AdminLog{
			AdminID:    adminID,
			Action:     models.ActionDeletedUser,
			TargetID:   &userID,
			TargetType: "user",
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		var sentIDs []uint
		if err := tx.Model(&models.ShoutOut{}).Where("sender_id = ?", userID).Pluck("id", &sentIDs).Error; err != nil {
			return err
		}
		if len(sentIDs) > 0 {
			if err := tx.Where("shoutout_id IN ?", sentIDs).Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shoutout_id IN ?", sentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shoutout_id IN ?", sentIDs).Delete(&models.ShoutOutRecipient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sentIDs).Delete(&models.ShoutOut{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("recipient_id = ?", userID).Delete(&models.ShoutOutRecipient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
