package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// bookRepository 图书仓储实现
// 1. 图书与分类的多对多关系由 book_categories 维护，读取时显式查询，不使用GORM关联预加载
// 2. 库存扣减使用条件UPDATE，防止并发超卖
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := toBookModel(b)
		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrISBNDuplicate
			}
			return apperrors.Wrap(err, "create book")
		}
		b.ID = model.ID
		b.CreatedAt = model.CreatedAt
		b.UpdatedAt = model.UpdatedAt
		return replaceCategories(tx, b.ID, b.CategoryIDs)
	})
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := conn(ctx, r.db)
	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "find book")
	}

	books := []*book.Book{toBookEntity(&model)}
	if err := loadBookRefs(db, books); err != nil {
		return nil, err
	}
	return books[0], nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"title":          b.Title,
			"description":    b.Description,
			"price":          b.Price,
			"isbn13":         b.ISBN13,
			"publisher":      b.Publisher,
			"published_date": b.PublishedDate,
			"stock_cnt":      b.StockCnt,
			"status":         b.Status,
			"author_id":      b.AuthorID,
			"updated_at":     b.UpdatedAt,
		})
		if result.Error != nil {
			if isDuplicateError(result.Error) {
				return book.ErrISBNDuplicate
			}
			return apperrors.Wrap(result.Error, "update book")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return replaceCategories(tx, b.ID, b.CategoryIDs)
	})
}

// Delete 购物车、心愿单、分类关联与图书一起删除
// 订单明细和有效评价的引用检查由调用方在同一事务中先完成
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&BookCategoryModel{}, &CartModel{}, &WishlistModel{}} {
			if err := tx.Where("book_id = ?", id).Delete(model).Error; err != nil {
				return apperrors.Wrap(err, "delete book references")
			}
		}
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "delete book")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

func (r *bookRepository) List(ctx context.Context, filter book.ListFilter, page pagination.Request) ([]*book.Book, int64, error) {
	db := conn(ctx, r.db)
	query := db.Model(&BookModel{})

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		like := containsPattern(strings.ToLower(kw))
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("id IN (?)",
			db.Model(&BookCategoryModel{}).Select("book_id").Where("category_id = ?", *filter.CategoryID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count books")
	}

	var models []BookModel
	if err := query.Scopes(paginate(page)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "list books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	if err := loadBookRefs(db, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
// 必须在 TxManager 开启的事务中调用，锁在事务结束时释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "lock book")
	}
	return toBookEntity(&model), nil
}

// DecreaseStock UPDATE books SET stock_cnt = stock_cnt - ? WHERE id = ? AND stock_cnt >= ?
func (r *bookRepository) DecreaseStock(ctx context.Context, id uint, quantity int) error {
	db := conn(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ? AND stock_cnt >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_cnt":  gorm.Expr("stock_cnt - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "decrease stock")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 影响0行：图书不存在或库存不足，再查一次确定原因
	var model BookModel
	if err := db.Select("id", "stock_cnt").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return book.ErrBookNotFound.WithDetails(map[string]interface{}{"book_id": id})
		}
		return apperrors.Wrap(err, "find book")
	}
	return book.ErrInsufficientStock.WithDetails(map[string]interface{}{
		"book_id":   id,
		"stock_cnt": model.StockCnt,
		"requested": quantity,
	})
}

func (r *bookRepository) CountReferences(ctx context.Context, id uint) (int64, int64, error) {
	db := conn(ctx, r.db)
	var items, reviews int64
	if err := db.Model(&OrderItemModel{}).Where("book_id = ?", id).Count(&items).Error; err != nil {
		return 0, 0, apperrors.Wrap(err, "count order items")
	}
	if err := db.Model(&ReviewModel{}).Scopes(notDeleted("reviews")).Where("book_id = ?", id).Count(&reviews).Error; err != nil {
		return 0, 0, apperrors.Wrap(err, "count reviews")
	}
	return items, reviews, nil
}

// =========================================
// 辅助函数
// =========================================

// replaceCategories 整体替换图书的分类关联
func replaceCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return apperrors.Wrap(err, "clear book categories")
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	now := time.Now()
	links := make([]BookCategoryModel, len(categoryIDs))
	for i, cid := range categoryIDs {
		links[i] = BookCategoryModel{BookID: bookID, CategoryID: cid, CreatedAt: now}
	}
	if err := tx.Create(&links).Error; err != nil {
		return apperrors.Wrap(err, "link book categories")
	}
	return nil
}

type bookCategoryRow struct {
	BookID uint
	ID     uint
	Name   string
	Slug   string
}

// loadBookRefs 批量带出作者与分类摘要，两次查询，避免 N+1
func loadBookRefs(db *gorm.DB, books []*book.Book) error {
	if len(books) == 0 {
		return nil
	}
	bookIDs := make([]uint, 0, len(books))
	authorIDs := make([]uint, 0, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.ID)
		authorIDs = append(authorIDs, b.AuthorID)
	}

	var authors []AuthorModel
	if err := db.Select("id", "name").Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return apperrors.Wrap(err, "load book authors")
	}
	authorByID := make(map[uint]*book.AuthorRef, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = &book.AuthorRef{ID: a.ID, Name: a.Name}
	}

	var rows []bookCategoryRow
	err := db.Table("book_categories").
		Select("book_categories.book_id, categories.id, categories.name, categories.slug").
		Joins("JOIN categories ON categories.id = book_categories.category_id").
		Where("book_categories.book_id IN ?", bookIDs).
		Order("categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return apperrors.Wrap(err, "load book categories")
	}
	catsByBook := make(map[uint][]book.CategoryRef, len(books))
	for _, row := range rows {
		catsByBook[row.BookID] = append(catsByBook[row.BookID], book.CategoryRef{ID: row.ID, Name: row.Name, Slug: row.Slug})
	}

	for _, b := range books {
		b.Author = authorByID[b.AuthorID]
		b.Categories = catsByBook[b.ID]
		if b.Categories == nil {
			b.Categories = []book.CategoryRef{}
		}
		b.CategoryIDs = make([]uint, len(b.Categories))
		for i, c := range b.Categories {
			b.CategoryIDs[i] = c.ID
		}
	}
	return nil
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Price:         b.Price,
		ISBN13:        b.ISBN13,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		StockCnt:      b.StockCnt,
		Status:        b.Status,
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Price:         m.Price,
		ISBN13:        m.ISBN13,
		Publisher:     m.Publisher,
		PublishedDate: m.PublishedDate,
		StockCnt:      m.StockCnt,
		Status:        m.Status,
		AuthorID:      m.AuthorID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
