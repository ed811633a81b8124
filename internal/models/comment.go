package models

import "time"

// Comment is a reply to a Post. PostID is fixed at creation, same rule
// as Post.TradID.
type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PostID    int       `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (c *Comment) ItemID() int           { return c.ID }
func (c *Comment) OwnerID() int          { return c.UserID }
func (c *Comment) Text() string          { return c.Content }
func (c *Comment) SetText(s string)      { c.Content = s }
func (c *Comment) ImagePath() string     { return c.Image }
func (c *Comment) SetImagePath(s string) { c.Image = s }

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	PostID  int    `json:"post_id" binding:"required"`
}
