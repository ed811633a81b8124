package models

import "time"

// Post is a reply inside a Trad. TradID is fixed at creation; the post
// store rejects updates that try to move a post to another trad.
type Post struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	TradID    int       `gorm:"not null;index" json:"trad_id"`
	Trad      Trad      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (p *Post) ItemID() int           { return p.ID }
func (p *Post) OwnerID() int          { return p.UserID }
func (p *Post) Text() string          { return p.Content }
func (p *Post) SetText(s string)      { p.Content = s }
func (p *Post) ImagePath() string     { return p.Image }
func (p *Post) SetImagePath(s string) { p.Image = s }

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
	TradID  int    `json:"trad_id" binding:"required"`
}
