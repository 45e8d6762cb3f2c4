package review

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Review 书评
type Review struct {
	ID        uint
	BookID    uint
	UserID    uint
	Rating    int
	Title     string
	Content   string
	LikeCount int64 // 只读，列表和详情查询时带出
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CreateParams 创建书评参数
type CreateParams struct {
	BookID  uint
	Rating  int
	Title   string
	Content string
}

// UpdateParams 部分更新，nil 不修改
type UpdateParams struct {
	Rating  *int
	Title   *string
	Content *string
}

// NewReview 创建书评
func NewReview(userID uint, p CreateParams) (*Review, error) {
	if p.BookID == 0 {
		return nil, ErrBookRequired
	}
	r := &Review{BookID: p.BookID, UserID: userID}
	if err := r.Apply(UpdateParams{Rating: &p.Rating, Title: &p.Title, Content: &p.Content}); err != nil {
		return nil, err
	}
	r.CreatedAt = r.UpdatedAt
	return r, nil
}

// Apply 应用部分更新
func (r *Review) Apply(p UpdateParams) error {
	if p.Rating != nil {
		if *p.Rating < 1 || *p.Rating > 5 {
			return ErrInvalidRating
		}
		r.Rating = *p.Rating
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if utf8.RuneCountInString(title) > 255 {
			return ErrInvalidTitle
		}
		r.Title = title
	}
	if p.Content != nil {
		r.Content = *p.Content
	}
	r.UpdatedAt = time.Now()
	return nil
}

// Comment 书评下的评论
// 通过 ParentID 形成树，内存中不保存子节点引用，树由查询方按 ParentID 组装
type Comment struct {
	ID        uint
	ReviewID  uint
	UserID    uint
	ParentID  *uint
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewComment 创建评论
func NewComment(reviewID, userID uint, parentID *uint, content string) (*Comment, error) {
	c := &Comment{ReviewID: reviewID, UserID: userID, ParentID: parentID}
	if err := c.Edit(content); err != nil {
		return nil, err
	}
	c.CreatedAt = c.UpdatedAt
	return c, nil
}

// Edit 修改内容
func (c *Comment) Edit(content string) error {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < 1 || n > 2000 {
		return ErrInvalidContent
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return nil
}

// Like 点赞，(user, review) 复合主键，存在即已点赞
type Like struct {
	UserID    uint
	ReviewID  uint
	CreatedAt time.Time
}
