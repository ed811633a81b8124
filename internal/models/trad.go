package models

import "time"

// Trad is a forum thread, the root content kind. Posts and likes hang
// off it and are removed with it.
type Trad struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `json:"image,omitempty"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (t *Trad) ItemID() int           { return t.ID }
func (t *Trad) OwnerID() int          { return t.UserID }
func (t *Trad) Text() string          { return t.Content }
func (t *Trad) SetText(s string)      { t.Content = s }
func (t *Trad) ImagePath() string     { return t.Image }
func (t *Trad) SetImagePath(s string) { t.Image = s }

type CreateTradRequest struct {
	Content string `json:"content" binding:"required"`
}
