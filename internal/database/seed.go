package database

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

// Default records created on first run.
const (
	MainUserName    = "main"
	MainUserNick    = "Main"
	MainUserPicture = "uploads/users/main.jpg"

	MainTradContent = "Main trad"
	MainTradPicture = "uploads/trads/trad-1.jpg"

	MainPostContent = "Main post"
	MainPostPicture = "uploads/trads/trad-1-post-1.jpg"

	MainCommentContent = "Main comment"
	MainCommentPicture = "uploads/trads/trad-1-post-1-com-1.jpg"
)

// Seed creates the main admin account and a starter trad/post/comment
// chain. It is idempotent and runs once at startup, before the server
// accepts traffic.
func Seed(db *gorm.DB) error {
	log := logrus.WithField("component", "seed")

	var user models.User
	err := db.Where("username = ?", MainUserName).First(&user).Error
	if err == nil {
		log.Info("seed data already present, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	pass := os.Getenv("MAIN_USER_PASSWORD")
	if pass == "" {
		pass = "mainPass"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Username: MainUserName,
			NickName: MainUserNick,
			Password: string(hashed),
			Avatar:   MainUserPicture,
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		trad := models.Trad{
			Content: MainTradContent,
			Image:   MainTradPicture,
			UserID:  user.ID,
		}
		if err := tx.Create(&trad).Error; err != nil {
			return err
		}

		post := models.Post{
			Content: MainPostContent,
			Image:   MainPostPicture,
			UserID:  user.ID,
			TradID:  trad.ID,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		comment := models.Comment{
			Content: MainCommentContent,
			Image:   MainCommentPicture,
			UserID:  user.ID,
			PostID:  post.ID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		log.WithField("user_id", user.ID).Info("seed data created")
		return nil
	})
}
