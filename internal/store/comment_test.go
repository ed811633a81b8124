package store

import (
	"testing"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

func TestCommentStore_AddRequiresPost(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "alice")
	comments := NewCommentStore(db)

	_, err := comments.Add(&models.Comment{Content: "floating", UserID: user.ID, PostID: 88})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for missing post, got %v", err)
	}
	if err.Error() != "post not found" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestCommentStore_AddAndGet(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "alice")
	trad := createTestTrad(t, db, user.ID)
	post := createTestPost(t, db, user.ID, trad.ID)
	comments := NewCommentStore(db)

	added, err := comments.Add(&models.Comment{Content: "nice", UserID: user.ID, PostID: post.ID})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := comments.Get(added.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.PostID != post.ID || got.Content != "nice" {
		t.Fatalf("Get returned wrong comment: %+v", got)
	}
}

func TestCommentStore_UpdateRejectsPostChange(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "alice")
	trad := createTestTrad(t, db, user.ID)
	postA := createTestPost(t, db, user.ID, trad.ID)
	postB := createTestPost(t, db, user.ID, trad.ID)
	comments := NewCommentStore(db)

	comment := createTestComment(t, db, user.ID, postA.ID)

	_, err := comments.Update(&models.Comment{ID: comment.ID, Content: "moved", UserID: user.ID, PostID: postB.ID})
	if !IsOwnership(err) {
		t.Fatalf("expected ownership error on post change, got %v", err)
	}
	if err.Error() != "cannot change post" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}

	stored, _ := comments.Get(comment.ID)
	if stored.PostID != postA.ID {
		t.Fatalf("post changed despite rejection: %+v", stored)
	}
}

func TestCommentStore_DeleteRemovesLikes(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	trad := createTestTrad(t, db, alice.ID)
	post := createTestPost(t, db, alice.ID, trad.ID)
	comments := NewCommentStore(db)

	comment := createTestComment(t, db, alice.ID, post.ID)

	if _, err := comments.LikeContent(comment.ID, bob.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	deleted, err := comments.Delete(comment.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", deleted, err)
	}

	if n := countRows(t, db, &models.CommentLike{}); n != 0 {
		t.Errorf("expected comment likes to cascade, found %d rows", n)
	}
	if n := countRows(t, db, &models.Post{}); n != 1 {
		t.Errorf("post was deleted with its comment, found %d rows", n)
	}
}

func TestCommentStore_ToggleLike(t *testing.T) {
	db := openTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	trad := createTestTrad(t, db, alice.ID)
	post := createTestPost(t, db, alice.ID, trad.ID)
	comments := NewCommentStore(db)

	comment := createTestComment(t, db, alice.ID, post.ID)

	if ok, err := comments.ToggleLikeContent(comment.ID, bob.ID); err != nil || !ok {
		t.Fatalf("toggle on = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := comments.ToggleLikeContent(comment.ID, bob.ID); err != nil || !ok {
		t.Fatalf("toggle off = (%v, %v), want (true, nil)", ok, err)
	}
	if n := countRows(t, db, &models.CommentLike{}); n != 0 {
		t.Fatalf("expected 0 like rows after double toggle, found %d", n)
	}
}
