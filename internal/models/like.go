package models

import "time"

// Like rows track individual user likes, one table per content kind.
// The composite primary key (user, content) is the authoritative guard
// against duplicate likes; the stores treat their exists pre-check as
// an optimization only.

type TradLike struct {
	UserID    int       `gorm:"primaryKey" json:"user_id"`
	TradID    int       `gorm:"primaryKey" json:"trad_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Trad      Trad      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type PostLike struct {
	UserID    int       `gorm:"primaryKey" json:"user_id"`
	PostID    int       `gorm:"primaryKey" json:"post_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentLike struct {
	UserID    int       `gorm:"primaryKey" json:"user_id"`
	CommentID int       `gorm:"primaryKey" json:"comment_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Comment   Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
