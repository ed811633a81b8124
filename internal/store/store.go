package store

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

// Store is the uniform CRUD + like contract over one content kind.
// Reads signal absence with nil/false; Add and Update return
// ValidationError or OwnershipError for broken references.
type Store[T any] interface {
	Add(item *T) (*T, error)
	Delete(id int) (bool, error)
	Get(id int) (*T, error)
	GetAll() ([]T, error)
	Update(item *T) (*T, error)
	UpdateImage(id int, path string) (*T, error)
	UpdateContent(id int, text string) (*T, error)
	LikeContent(id, userID int) (bool, error)
	UnLikeContent(id, userID int) (bool, error)
	ToggleLikeContent(id, userID int) (bool, error)
}

// content is the accessor set shared by Trad, Post and Comment. The
// specialized stores compose the generic helpers below through it
// instead of inheriting from a base type.
type content interface {
	ItemID() int
	OwnerID() int
	Text() string
	SetText(string)
	ImagePath() string
	SetImagePath(string)
}

// contentPtr constrains PT to "pointer to T that behaves like content",
// which lets the helpers allocate a T and hand callers back a typed
// pointer.
type contentPtr[T any] interface {
	*T
	content
}

func storeLogger(kind string) *logrus.Entry {
	return logrus.WithField("store", kind)
}

// getByID is an untracked single-row read. Returns nil when absent.
func getByID[T any](db *gorm.DB, id int) (*T, error) {
	var item T
	err := db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// getAll returns every row of the kind, newest first.
func getAll[T any](db *gorm.DB) ([]T, error) {
	var items []T
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// validateItem rejects nil items and items whose owner does not resolve
// to an existing user.
func validateItem[T any, PT contentPtr[T]](db *gorm.DB, log *logrus.Entry, item PT) error {
	if item == nil {
		log.Error("nil item passed to store")
		return &ValidationError{Msg: "item is nil"}
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", item.OwnerID()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		log.WithField("user_id", item.OwnerID()).Error("owner not found")
		return &ValidationError{Msg: "owner not found"}
	}
	return nil
}

// addContent inserts item transactionally. When the item carries an
// explicit id that already exists, the stored row is returned as-is and
// nothing is inserted.
func addContent[T any, PT contentPtr[T]](db *gorm.DB, log *logrus.Entry, item PT) (PT, error) {
	if err := validateItem[T](db, log, item); err != nil {
		return nil, err
	}

	if item.ItemID() != 0 {
		existing, err := getByID[T](db, item.ItemID())
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.WithField("id", item.ItemID()).Info("item already stored, returning existing row")
			return existing, nil
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}

	log.WithField("id", item.ItemID()).Info("item created")
	return item, nil
}

// deleteContent removes the row by id. Returns false when absent; the
// database cascades to children and like rows.
func deleteContent[T any](db *gorm.DB, log *logrus.Entry, id int) (bool, error) {
	existing, err := getByID[T](db, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		log.WithField("id", id).Info("delete skipped, item not found")
		return false, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(existing).Error
	})
	if err != nil {
		return false, err
	}

	log.WithField("id", id).Info("item deleted")
	return true, nil
}

// updateContent writes every mutable column of item. The creation
// timestamp is excluded from the update set and the owner must match
// the stored row. checkParent, when non-nil, is the specialized store's
// parent-immutability hook and sees the stored row.
func updateContent[T any, PT contentPtr[T]](db *gorm.DB, log *logrus.Entry, item PT, checkParent func(existing PT) error) (PT, error) {
	if err := validateItem[T](db, log, item); err != nil {
		return nil, err
	}

	existing, err := getByID[T](db, item.ItemID())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		log.WithField("id", item.ItemID()).Info("update skipped, item not found")
		return nil, nil
	}

	stored := PT(existing)
	if item.OwnerID() != stored.OwnerID() {
		log.WithFields(logrus.Fields{"id": item.ItemID(), "user_id": item.OwnerID()}).
			Error("update rejected, owner change")
		return nil, &OwnershipError{Msg: "cannot change owner"}
	}
	if checkParent != nil {
		if err := checkParent(stored); err != nil {
			return nil, err
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("created_at", clause.Associations).Save(item).Error
	})
	if err != nil {
		return nil, err
	}

	log.WithField("id", item.ItemID()).Info("item updated")
	fresh, err := getByID[T](db, item.ItemID())
	if err != nil {
		return nil, err
	}
	return PT(fresh), nil
}

// insertLike records a like transactionally after an exists pre-check.
// A duplicate-key violation from the composite primary key is the
// authoritative guard and reports the same "already liked" outcome as
// the pre-check.
func insertLike[L any](db *gorm.DB, log *logrus.Entry, like *L, cond string, id, userID int) (bool, error) {
	var existing L
	err := db.Where(cond, id, userID).First(&existing).Error
	if err == nil {
		log.WithFields(logrus.Fields{"id": id, "user_id": userID}).Info("like already exists")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(like).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent like.
			return false, nil
		}
		return false, err
	}

	log.WithFields(logrus.Fields{"id": id, "user_id": userID}).Info("like recorded")
	return true, nil
}

// removeLike deletes the matching like row. Returns false when no like
// exists.
func removeLike[L any](db *gorm.DB, log *logrus.Entry, cond string, id, userID int) (bool, error) {
	var existing L
	err := db.Where(cond, id, userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithFields(logrus.Fields{"id": id, "user_id": userID}).Info("unlike skipped, no like row")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return false, err
	}

	log.WithFields(logrus.Fields{"id": id, "user_id": userID}).Info("like removed")
	return true, nil
}

// likeExists reports whether a like row matches cond for (id, userID).
func likeExists[L any](db *gorm.DB, cond string, id, userID int) (bool, error) {
	var existing L
	err := db.Where(cond, id, userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
