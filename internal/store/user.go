package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/pagebook-app/pagebook-backend/pkg/utils"
	"gorm.io/gorm"
)

// EnsureUser creates the identity record on first successful authentication
// and returns the existing row on later sign-ins. The default avatar is
// derived from the user id when none is provided.
func (s *Store) EnsureUser(ctx context.Context, id, name, email, photoURL string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("Email is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDBErr(err, "")
	}

	if id == "" {
		id = utils.GenerateID()
	}
	if photoURL == "" {
		photoURL = utils.DefaultAvatarURL(id)
	}

	user = models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		PhotoURL:  photoURL,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent first sign-in for the same account.
			var existing models.User
			if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err != nil {
				return nil, wrapDBErr(err, "User not found")
			}
			return &existing, nil
		}
		return nil, wrapDBErr(err, "")
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapDBErr(err, "User not found")
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	PhotoURL *string
}

// UpdateProfile edits the user's own record. Denormalized copies of the
// name and photo on existing posts and messages are deliberately left
// stale.
func (s *Store) UpdateProfile(ctx context.Context, userID, requesterID string, update ProfileUpdate) (*models.User, error) {
	if userID != requesterID {
		return nil, apperrors.NewPermissionError("You can only edit your own profile")
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Display name cannot be empty")
		}
		fields["name"] = name
	}
	if update.Bio != nil {
		fields["bio"] = strings.TrimSpace(*update.Bio)
	}
	if update.PhotoURL != nil {
		fields["photo_url"] = *update.PhotoURL
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("Nothing to update")
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return wrapDBErr(err, "User not found")
		}
		return tx.Model(&user).Updates(fields).Error
	})
	if err != nil {
		return nil, wrapDBErr(err, "User not found")
	}

	s.broker.Publish(TopicUser+userID, "updated", user)
	return &user, nil
}

// ListUsers returns all users ordered by display name, for the member
// directory.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, wrapDBErr(err, "")
}

// SearchUsers matches the query against names and email prefixes,
// case-insensitively. Wildcards in the query are treated as literals.
func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("Search query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	pattern := utils.SanitizeSearchQuery(query)
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(email) LIKE LOWER(?) ESCAPE '\\'", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, wrapDBErr(err, "")
}

// GetUsersByID fetches the given users in one query, keyed by id. Missing
// ids are simply absent from the result.
func (s *Store) GetUsersByID(ctx context.Context, ids []string) (map[string]*models.User, error) {
	byID := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrapDBErr(err, "")
	}
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

// SetAdmin flips a user's admin flag. Used by the promote_admin tool.
func (s *Store) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Update("is_admin", isAdmin)
	if res.Error != nil {
		return wrapDBErr(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("User not found")
	}
	return nil
}
