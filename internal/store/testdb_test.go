package store

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

// openTestDB gives each test its own sqlite database with foreign keys
// enforced, so cascade behavior matches the postgres deployment.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "forum.db") + "?_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Trad{},
		&models.Post{},
		&models.Comment{},
		&models.TradLike{},
		&models.PostLike{},
		&models.CommentLike{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		NickName: username,
		Password: "hashed",
		Role:     models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestTrad(t *testing.T, db *gorm.DB, userID int) *models.Trad {
	t.Helper()

	trad := models.Trad{Content: "test trad", UserID: userID}
	if err := db.Create(&trad).Error; err != nil {
		t.Fatalf("Failed to create test trad: %v", err)
	}
	return &trad
}

func createTestPost(t *testing.T, db *gorm.DB, userID, tradID int) *models.Post {
	t.Helper()

	post := models.Post{Content: "test post", UserID: userID, TradID: tradID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return &post
}

func createTestComment(t *testing.T, db *gorm.DB, userID, postID int) *models.Comment {
	t.Helper()

	comment := models.Comment{Content: "test comment", UserID: userID, PostID: postID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return &comment
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
