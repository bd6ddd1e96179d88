package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pagebook-app/pagebook-backend/internal/models"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"gorm.io/gorm"
)

// LikeResult reflects the post-toggle state of a post's like field for the
// calling user.
type LikeResult struct {
	Liked bool `json:"liked"`
	Count int  `json:"newCount"`
}

// CreatePost denormalizes the author's current name and photo into the post
// row. Later profile edits do not rewrite old posts; that staleness is an
// accepted trade-off for join-free feed reads.
func (s *Store) CreatePost(ctx context.Context, authorID, text, imageURL string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" && imageURL == "" {
		return nil, apperrors.NewValidationError("Post must contain text or an image")
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, wrapDBErr(err, "Author not found")
	}

	post := models.Post{
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName(),
		AuthorPhoto: author.PhotoURL,
		Content:     text,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, wrapDBErr(err, "")
	}

	s.broker.Publish(TopicPosts, "created", post)
	return &post, nil
}

// ToggleLike flips the caller's membership in the post's liker set and moves
// the counter in the same transaction. Toggling a just-deleted post fails
// with NotFound instead of resurrecting state.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error) {
	var result LikeResult

	// A duplicate-key insert means the same user raced two toggles; the
	// aborted transaction is retried once and sees the winner's like row.
	for attempt := 0; attempt < 2; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var post models.Post
			if err := tx.First(&post, "id = ?", postID).Error; err != nil {
				return wrapDBErr(err, "Post not found")
			}

			var like models.PostLike
			err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
			switch {
			case err == nil:
				// Present: remove membership, decrement with a floor at
				// zero. Under READ COMMITTED a concurrent unlike can win
				// the row delete first; this delete then matches nothing
				// and the counter was already adjusted, so decrementing
				// again would strand another user's like row.
				res := tx.Delete(&like)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected > 0 {
					if err := tx.Model(&models.Post{}).Where("id = ?", postID).
						Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error; err != nil {
						return err
					}
				}
				result.Liked = false

			case errors.Is(err, gorm.ErrRecordNotFound):
				newLike := models.PostLike{PostID: postID, UserID: userID}
				if err := tx.Create(&newLike).Error; err != nil {
					return err
				}
				res := tx.Model(&models.Post{}).Where("id = ?", postID).
					Update("likes", gorm.Expr("likes + 1"))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					// Post deleted after the initial read; roll back the
					// like row instead of counting against a ghost.
					return apperrors.NewNotFoundError("Post not found")
				}
				result.Liked = true

			default:
				return err
			}

			return tx.Model(&models.Post{}).Select("likes").
				Where("id = ?", postID).Scan(&result.Count).Error
		})

		if err == nil {
			s.broker.Publish(TopicPost+postID, "liked", result)
			return result, nil
		}
		if isUniqueViolation(err) && attempt == 0 {
			continue
		}
		return LikeResult{}, wrapDBErr(err, "Post not found")
	}

	return LikeResult{}, apperrors.NewConflictError("Like toggle conflicted twice, try again")
}

// EditPost is author-only and stamps EditedAt.
func (s *Store) EditPost(ctx context.Context, postID, editorID, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return apperrors.NewValidationError("Post text cannot be empty")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return wrapDBErr(err, "Post not found")
		}
		if post.AuthorID != editorID {
			return apperrors.NewPermissionError("Only the author can edit this post")
		}

		now := time.Now()
		res := tx.Model(&post).Updates(map[string]interface{}{
			"content":   newText,
			"edited_at": &now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFoundError("Post not found")
		}
		return nil
	})
	if err != nil {
		return wrapDBErr(err, "Post not found")
	}

	s.broker.Publish(TopicPost+postID, "updated", postID)
	s.broker.Publish(TopicPosts, "updated", postID)
	return nil
}

// DeletePost removes the post together with its comments and like rows.
// Cascade keeps the comment counter invariant trivially true and leaves no
// orphans for the feed to skip over.
func (s *Store) DeletePost(ctx context.Context, postID, requesterID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return wrapDBErr(err, "Post not found")
		}
		if post.AuthorID != requesterID {
			return apperrors.NewPermissionError("Only the author can delete this post")
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return wrapDBErr(err, "Post not found")
	}

	s.broker.Publish(TopicPost+postID, "deleted", postID)
	s.broker.Publish(TopicPosts, "deleted", postID)
	return nil
}

// AddComment inserts the comment and bumps the parent counter atomically,
// so N concurrent commenters settle at exactly +N. A parent deleted mid-race
// surfaces as NotFound.
func (s *Store) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Comment text cannot be empty")
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return wrapDBErr(err, "Post not found")
		}

		var author models.User
		if err := tx.First(&author, "id = ?", authorID).Error; err != nil {
			return wrapDBErr(err, "Author not found")
		}

		comment = models.Comment{
			PostID:     postID,
			AuthorID:   author.ID,
			AuthorName: author.DisplayName(),
			Content:    text,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		// The counter update doubles as the existence check: a post
		// deleted after the initial read matches zero rows here, and the
		// rollback takes the orphan comment with it.
		res := tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("comments", gorm.Expr("comments + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFoundError("Post not found")
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBErr(err, "Post not found")
	}

	s.broker.Publish(TopicPost+postID, "created", comment)
	return &comment, nil
}

// GetPost returns a single post, annotated with the viewer's like state
// when viewerID is non-empty.
func (s *Store) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		return nil, wrapDBErr(err, "Post not found")
	}
	if viewerID != "" {
		s.annotateLikes(ctx, viewerID, []*models.Post{&post})
	}
	return &post, nil
}

// ListPosts returns the feed by recency, newest first.
func (s *Store) ListPosts(ctx context.Context, viewerID string, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, wrapDBErr(err, "")
	}

	if viewerID != "" {
		refs := make([]*models.Post, len(posts))
		for i := range posts {
			refs[i] = &posts[i]
		}
		s.annotateLikes(ctx, viewerID, refs)
	}
	return posts, nil
}

// ListPostsByAuthor returns a user's own posts by recency.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, wrapDBErr(err, "")
}

// ListComments returns a post's comments oldest-first.
func (s *Store) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).Count(&exists).Error; err != nil {
		return nil, wrapDBErr(err, "")
	}
	if exists == 0 {
		return nil, apperrors.NewNotFoundError("Post not found")
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, wrapDBErr(err, "")
}

func (s *Store) annotateLikes(ctx context.Context, viewerID string, posts []*models.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var liked []string
	if err := s.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", viewerID, ids).
		Pluck("post_id", &liked).Error; err != nil {
		return
	}

	likedSet := make(map[string]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}
	for _, p := range posts {
		_, p.HasLiked = likedSet[p.ID]
	}
}
