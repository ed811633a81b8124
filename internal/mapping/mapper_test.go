package mapping

import (
	"path/filepath"
	"regexp"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "mapping.db") + "?_fk=1"
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

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, NickName: username, Password: "x", Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return &user
}

func TestTradViewNesting(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	trad := models.Trad{Content: "root", UserID: alice.ID}
	db.Create(&trad)
	post := models.Post{Content: "reply", UserID: bob.ID, TradID: trad.ID}
	db.Create(&post)
	comment := models.Comment{Content: "note", UserID: alice.ID, PostID: post.ID}
	db.Create(&comment)

	db.Create(&models.TradLike{TradID: trad.ID, UserID: bob.ID})
	db.Create(&models.PostLike{PostID: post.ID, UserID: alice.ID})

	m := NewMapper(db)
	view := m.TradView(&trad, bob.ID)

	if view.Author.NickName != "alice" {
		t.Fatalf("wrong trad author: %+v", view.Author)
	}
	if view.LikesCount != 1 || !view.IsLiked {
		t.Fatalf("trad like stats wrong: likes=%d liked=%v", view.LikesCount, view.IsLiked)
	}
	if len(view.Posts) != 1 {
		t.Fatalf("expected 1 nested post, got %d", len(view.Posts))
	}

	nested := view.Posts[0]
	if nested.Author.NickName != "bob" {
		t.Fatalf("wrong post author: %+v", nested.Author)
	}
	if nested.LikesCount != 1 || nested.IsLiked {
		// alice liked the post, bob is viewing
		t.Fatalf("post like stats wrong: likes=%d liked=%v", nested.LikesCount, nested.IsLiked)
	}
	if len(nested.Comments) != 1 || nested.Comments[0].Content != "note" {
		t.Fatalf("comments not nested: %+v", nested.Comments)
	}
}

func TestAnonymousViewerNeverLikes(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	trad := models.Trad{Content: "root", UserID: alice.ID}
	db.Create(&trad)
	db.Create(&models.TradLike{TradID: trad.ID, UserID: alice.ID})

	m := NewMapper(db)
	view := m.TradView(&trad, AnonymousViewer)

	if view.LikesCount != 1 {
		t.Fatalf("likes count wrong for anonymous viewer: %d", view.LikesCount)
	}
	if view.IsLiked {
		t.Fatal("anonymous viewer reads as having liked")
	}
}

func TestTradShortViewCounts(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	trad := models.Trad{Content: "root", UserID: alice.ID}
	db.Create(&trad)

	var lastPost models.Post
	for i := 0; i < 2; i++ {
		lastPost = models.Post{Content: "p", UserID: alice.ID, TradID: trad.ID}
		db.Create(&lastPost)
	}
	for i := 0; i < 3; i++ {
		db.Create(&models.Comment{Content: "c", UserID: alice.ID, PostID: lastPost.ID})
	}

	// Content under another trad must not bleed into the counts.
	other := models.Trad{Content: "other", UserID: alice.ID}
	db.Create(&other)
	otherPost := models.Post{Content: "op", UserID: alice.ID, TradID: other.ID}
	db.Create(&otherPost)
	db.Create(&models.Comment{Content: "oc", UserID: alice.ID, PostID: otherPost.ID})

	m := NewMapper(db)
	view := m.TradShortView(&trad, AnonymousViewer)

	if view.PostsCount != 2 {
		t.Fatalf("expected 2 posts, got %d", view.PostsCount)
	}
	if view.CommentsCount != 3 {
		t.Fatalf("expected 3 comments, got %d", view.CommentsCount)
	}
}

func TestDateFormat(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")

	trad := models.Trad{Content: "root", UserID: alice.ID}
	db.Create(&trad)

	m := NewMapper(db)
	view := m.TradShortView(&trad, AnonymousViewer)

	// yyyy.MM.dd:HH.mm.ss
	pattern := regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}:\d{2}\.\d{2}\.\d{2}$`)
	if !pattern.MatchString(view.CreatedAt) {
		t.Fatalf("created_at %q does not match the wire date format", view.CreatedAt)
	}
}

func TestPluralHelpersReturnEmptySlices(t *testing.T) {
	db := openTestDB(t)
	m := NewMapper(db)

	if views := m.TradViews(nil, AnonymousViewer); views == nil || len(views) != 0 {
		t.Fatalf("TradViews(nil) = %#v, want empty slice", views)
	}
	if views := m.PostViews(nil, AnonymousViewer); views == nil || len(views) != 0 {
		t.Fatalf("PostViews(nil) = %#v, want empty slice", views)
	}
}
