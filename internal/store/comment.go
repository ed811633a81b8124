package store

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

const commentLikeCond = "comment_id = ? AND user_id = ?"

// CommentStore manages comments: same shape as PostStore with the post
// as the required, immutable parent.
type CommentStore struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db, log: storeLogger("comment")}
}

func (s *CommentStore) validatePost(item *models.Comment) error {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", item.PostID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		s.log.WithField("post_id", item.PostID).Error("post not found")
		return &ValidationError{Msg: "post not found"}
	}
	return nil
}

func (s *CommentStore) Add(item *models.Comment) (*models.Comment, error) {
	if err := validateItem[models.Comment](s.db, s.log, item); err != nil {
		return nil, err
	}
	if err := s.validatePost(item); err != nil {
		return nil, err
	}
	return addContent(s.db, s.log, item)
}

func (s *CommentStore) Delete(id int) (bool, error) {
	return deleteContent[models.Comment](s.db, s.log, id)
}

func (s *CommentStore) Get(id int) (*models.Comment, error) {
	return getByID[models.Comment](s.db, id)
}

func (s *CommentStore) GetAll() ([]models.Comment, error) {
	return getAll[models.Comment](s.db)
}

func (s *CommentStore) Update(item *models.Comment) (*models.Comment, error) {
	if err := validateItem[models.Comment](s.db, s.log, item); err != nil {
		return nil, err
	}
	if err := s.validatePost(item); err != nil {
		return nil, err
	}
	return updateContent(s.db, s.log, item, func(existing *models.Comment) error {
		if item.PostID != existing.PostID {
			s.log.WithField("id", item.ID).Error("update rejected, post change")
			return &OwnershipError{Msg: "cannot change post"}
		}
		return nil
	})
}

func (s *CommentStore) UpdateImage(id int, path string) (*models.Comment, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetImagePath(path)
	return s.Update(existing)
}

func (s *CommentStore) UpdateContent(id int, text string) (*models.Comment, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetText(text)
	return s.Update(existing)
}

func (s *CommentStore) LikeContent(id, userID int) (bool, error) {
	like := models.CommentLike{CommentID: id, UserID: userID}
	return insertLike(s.db, s.log, &like, commentLikeCond, id, userID)
}

func (s *CommentStore) UnLikeContent(id, userID int) (bool, error) {
	return removeLike[models.CommentLike](s.db, s.log, commentLikeCond, id, userID)
}

func (s *CommentStore) ToggleLikeContent(id, userID int) (bool, error) {
	liked, err := likeExists[models.CommentLike](s.db, commentLikeCond, id, userID)
	if err != nil {
		return false, err
	}
	if liked {
		return s.UnLikeContent(id, userID)
	}
	return s.LikeContent(id, userID)
}

var _ Store[models.Comment] = (*CommentStore)(nil)
