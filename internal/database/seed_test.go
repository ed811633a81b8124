package database

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "seed.db") + "?_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func TestSeedCreatesDefaultChain(t *testing.T) {
	db := openSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var user models.User
	if err := db.Where("username = ?", MainUserName).First(&user).Error; err != nil {
		t.Fatalf("main user not created: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("main user role = %q, want %q", user.Role, models.RoleAdmin)
	}
	if user.Avatar != MainUserPicture {
		t.Fatalf("main user avatar = %q, want %q", user.Avatar, MainUserPicture)
	}

	var trad models.Trad
	if err := db.Where("user_id = ?", user.ID).First(&trad).Error; err != nil {
		t.Fatalf("default trad not created: %v", err)
	}
	if trad.Content != MainTradContent || trad.Image != MainTradPicture {
		t.Fatalf("default trad wrong: %+v", trad)
	}

	var post models.Post
	if err := db.Where("trad_id = ?", trad.ID).First(&post).Error; err != nil {
		t.Fatalf("default post not created: %v", err)
	}
	if post.Content != MainPostContent {
		t.Fatalf("default post wrong: %+v", post)
	}

	var comment models.Comment
	if err := db.Where("post_id = ?", post.ID).First(&comment).Error; err != nil {
		t.Fatalf("default comment not created: %v", err)
	}
	if comment.Content != MainCommentContent {
		t.Fatalf("default comment wrong: %+v", comment)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	var users, trads int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Trad{}).Count(&trads)
	if users != 1 || trads != 1 {
		t.Fatalf("seed duplicated rows: users=%d trads=%d", users, trads)
	}
}
