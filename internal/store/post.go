package store

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

const postLikeCond = "post_id = ? AND user_id = ?"

// PostStore manages posts. On top of the shared helpers it requires the
// referenced trad to exist and keeps TradID immutable once the post is
// stored.
type PostStore struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db, log: storeLogger("post")}
}

// validateTrad rejects posts whose trad does not resolve.
func (s *PostStore) validateTrad(item *models.Post) error {
	var count int64
	if err := s.db.Model(&models.Trad{}).Where("id = ?", item.TradID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		s.log.WithField("trad_id", item.TradID).Error("trad not found")
		return &ValidationError{Msg: "trad not found"}
	}
	return nil
}

func (s *PostStore) Add(item *models.Post) (*models.Post, error) {
	if err := validateItem[models.Post](s.db, s.log, item); err != nil {
		return nil, err
	}
	if err := s.validateTrad(item); err != nil {
		return nil, err
	}
	return addContent(s.db, s.log, item)
}

func (s *PostStore) Delete(id int) (bool, error) {
	return deleteContent[models.Post](s.db, s.log, id)
}

func (s *PostStore) Get(id int) (*models.Post, error) {
	return getByID[models.Post](s.db, id)
}

func (s *PostStore) GetAll() ([]models.Post, error) {
	return getAll[models.Post](s.db)
}

func (s *PostStore) Update(item *models.Post) (*models.Post, error) {
	if err := validateItem[models.Post](s.db, s.log, item); err != nil {
		return nil, err
	}
	if err := s.validateTrad(item); err != nil {
		return nil, err
	}
	return updateContent(s.db, s.log, item, func(existing *models.Post) error {
		if item.TradID != existing.TradID {
			s.log.WithField("id", item.ID).Error("update rejected, trad change")
			return &OwnershipError{Msg: "cannot change trad"}
		}
		return nil
	})
}

func (s *PostStore) UpdateImage(id int, path string) (*models.Post, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetImagePath(path)
	return s.Update(existing)
}

func (s *PostStore) UpdateContent(id int, text string) (*models.Post, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetText(text)
	return s.Update(existing)
}

func (s *PostStore) LikeContent(id, userID int) (bool, error) {
	like := models.PostLike{PostID: id, UserID: userID}
	return insertLike(s.db, s.log, &like, postLikeCond, id, userID)
}

func (s *PostStore) UnLikeContent(id, userID int) (bool, error) {
	return removeLike[models.PostLike](s.db, s.log, postLikeCond, id, userID)
}

func (s *PostStore) ToggleLikeContent(id, userID int) (bool, error) {
	liked, err := likeExists[models.PostLike](s.db, postLikeCond, id, userID)
	if err != nil {
		return false, err
	}
	if liked {
		return s.UnLikeContent(id, userID)
	}
	return s.LikeContent(id, userID)
}

var _ Store[models.Post] = (*PostStore)(nil)
