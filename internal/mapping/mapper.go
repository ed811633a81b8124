package mapping

import (
	"gorm.io/gorm"

	"github.com/emilythestrangee/trad-forum/backend/internal/models"
)

// AnonymousViewer marks an unauthenticated request; no like row ever
// matches it, so is_liked stays false.
const AnonymousViewer = -1

const dateFormat = "2006.01.02:15.04.05"

type AuthorView struct {
	ID       int    `json:"id"`
	NickName string `json:"nick_name"`
	Avatar   string `json:"avatar,omitempty"`
}

type CommentView struct {
	ID         int        `json:"id"`
	Content    string     `json:"content"`
	CreatedAt  string     `json:"created_at"`
	Image      string     `json:"image,omitempty"`
	Author     AuthorView `json:"author"`
	LikesCount int        `json:"likes_count"`
	IsLiked    bool       `json:"is_liked"`
}

type PostView struct {
	ID         int           `json:"id"`
	Content    string        `json:"content"`
	CreatedAt  string        `json:"created_at"`
	Image      string        `json:"image,omitempty"`
	Author     AuthorView    `json:"author"`
	Comments   []CommentView `json:"comments"`
	LikesCount int           `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
}

type TradView struct {
	ID         int        `json:"id"`
	Content    string     `json:"content"`
	CreatedAt  string     `json:"created_at"`
	Image      string     `json:"image,omitempty"`
	Author     AuthorView `json:"author"`
	Posts      []PostView `json:"posts"`
	LikesCount int        `json:"likes_count"`
	IsLiked    bool       `json:"is_liked"`
}

// TradShortView is the listing projection: counts instead of nested
// content.
type TradShortView struct {
	ID            int        `json:"id"`
	Content       string     `json:"content"`
	CreatedAt     string     `json:"created_at"`
	Image         string     `json:"image,omitempty"`
	Author        AuthorView `json:"author"`
	LikesCount    int        `json:"likes_count"`
	PostsCount    int        `json:"posts_count"`
	CommentsCount int        `json:"comments_count"`
	IsLiked       bool       `json:"is_liked"`
}

// Mapper projects stored entities into view models, resolving authors,
// like counts and the viewer's own like on demand.
type Mapper struct {
	db *gorm.DB
}

func NewMapper(db *gorm.DB) *Mapper {
	return &Mapper{db: db}
}

func (m *Mapper) author(userID int) AuthorView {
	var user models.User
	if err := m.db.First(&user, userID).Error; err != nil {
		return AuthorView{ID: userID}
	}
	return AuthorView{ID: user.ID, NickName: user.NickName, Avatar: user.Avatar}
}

func (m *Mapper) likeStats(model interface{}, cond string, contentID, viewerID int) (int, bool) {
	var total int64
	m.db.Model(model).Where(cond+" = ?", contentID).Count(&total)

	liked := false
	if viewerID != AnonymousViewer {
		var mine int64
		m.db.Model(model).Where(cond+" = ? AND user_id = ?", contentID, viewerID).Count(&mine)
		liked = mine > 0
	}
	return int(total), liked
}

func (m *Mapper) CommentView(comment *models.Comment, viewerID int) CommentView {
	likes, liked := m.likeStats(&models.CommentLike{}, "comment_id", comment.ID, viewerID)
	return CommentView{
		ID:         comment.ID,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt.Format(dateFormat),
		Image:      comment.Image,
		Author:     m.author(comment.UserID),
		LikesCount: likes,
		IsLiked:    liked,
	}
}

func (m *Mapper) PostView(post *models.Post, viewerID int) PostView {
	var comments []models.Comment
	m.db.Where("post_id = ?", post.ID).Order("created_at desc").Find(&comments)

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, m.CommentView(&comments[i], viewerID))
	}

	likes, liked := m.likeStats(&models.PostLike{}, "post_id", post.ID, viewerID)
	return PostView{
		ID:         post.ID,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt.Format(dateFormat),
		Image:      post.Image,
		Author:     m.author(post.UserID),
		Comments:   views,
		LikesCount: likes,
		IsLiked:    liked,
	}
}

func (m *Mapper) TradView(trad *models.Trad, viewerID int) TradView {
	var posts []models.Post
	m.db.Where("trad_id = ?", trad.ID).Order("created_at desc").Find(&posts)

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, m.PostView(&posts[i], viewerID))
	}

	likes, liked := m.likeStats(&models.TradLike{}, "trad_id", trad.ID, viewerID)
	return TradView{
		ID:         trad.ID,
		Content:    trad.Content,
		CreatedAt:  trad.CreatedAt.Format(dateFormat),
		Image:      trad.Image,
		Author:     m.author(trad.UserID),
		Posts:      views,
		LikesCount: likes,
		IsLiked:    liked,
	}
}

func (m *Mapper) TradShortView(trad *models.Trad, viewerID int) TradShortView {
	var postsCount int64
	m.db.Model(&models.Post{}).Where("trad_id = ?", trad.ID).Count(&postsCount)

	var commentsCount int64
	m.db.Model(&models.Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.trad_id = ?", trad.ID).
		Count(&commentsCount)

	likes, liked := m.likeStats(&models.TradLike{}, "trad_id", trad.ID, viewerID)
	return TradShortView{
		ID:            trad.ID,
		Content:       trad.Content,
		CreatedAt:     trad.CreatedAt.Format(dateFormat),
		Image:         trad.Image,
		Author:        m.author(trad.UserID),
		LikesCount:    likes,
		PostsCount:    int(postsCount),
		CommentsCount: int(commentsCount),
		IsLiked:       liked,
	}
}

func (m *Mapper) TradViews(trads []models.Trad, viewerID int) []TradView {
	views := make([]TradView, 0, len(trads))
	for i := range trads {
		views = append(views, m.TradView(&trads[i], viewerID))
	}
	return views
}

func (m *Mapper) TradShortViews(trads []models.Trad, viewerID int) []TradShortView {
	views := make([]TradShortView, 0, len(trads))
	for i := range trads {
		views = append(views, m.TradShortView(&trads[i], viewerID))
	}
	return views
}

func (m *Mapper) PostViews(posts []models.Post, viewerID int) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, m.PostView(&posts[i], viewerID))
	}
	return views
}

func (m *Mapper) CommentViews(comments []models.Comment, viewerID int) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, m.CommentView(&comments[i], viewerID))
	}
	return views
}
