package store

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

const tradLikeCond = "trad_id = ? AND user_id = ?"

// TradStore manages trads, the root content kind. It has no parent to
// validate; deleting a trad cascades to its posts, their comments and
// every like row underneath.
type TradStore struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewTradStore(db *gorm.DB) *TradStore {
	return &TradStore{db: db, log: storeLogger("trad")}
}

func (s *TradStore) Add(item *models.Trad) (*models.Trad, error) {
	return addContent(s.db, s.log, item)
}

func (s *TradStore) Delete(id int) (bool, error) {
	return deleteContent[models.Trad](s.db, s.log, id)
}

func (s *TradStore) Get(id int) (*models.Trad, error) {
	return getByID[models.Trad](s.db, id)
}

func (s *TradStore) GetAll() ([]models.Trad, error) {
	return getAll[models.Trad](s.db)
}

func (s *TradStore) Update(item *models.Trad) (*models.Trad, error) {
	return updateContent(s.db, s.log, item, nil)
}

func (s *TradStore) UpdateImage(id int, path string) (*models.Trad, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetImagePath(path)
	return s.Update(existing)
}

func (s *TradStore) UpdateContent(id int, text string) (*models.Trad, error) {
	existing, err := s.Get(id)
	if existing == nil || err != nil {
		return nil, err
	}
	existing.SetText(text)
	return s.Update(existing)
}

func (s *TradStore) LikeContent(id, userID int) (bool, error) {
	like := models.TradLike{TradID: id, UserID: userID}
	return insertLike(s.db, s.log, &like, tradLikeCond, id, userID)
}

func (s *TradStore) UnLikeContent(id, userID int) (bool, error) {
	return removeLike[models.TradLike](s.db, s.log, tradLikeCond, id, userID)
}

func (s *TradStore) ToggleLikeContent(id, userID int) (bool, error) {
	liked, err := likeExists[models.TradLike](s.db, tradLikeCond, id, userID)
	if err != nil {
		return false, err
	}
	if liked {
		return s.UnLikeContent(id, userID)
	}
	return s.LikeContent(id, userID)
}

var _ Store[models.Trad] = (*TradStore)(nil)
