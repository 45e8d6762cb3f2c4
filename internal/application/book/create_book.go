package book

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
)

// CreateBookUseCase 图书上架用例（管理员）
// 作者、分类存在性检查和写入在同一事务中完成
type CreateBookUseCase struct {
	bookService book.Service
	txManager   TxManager
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookService book.Service, txManager TxManager) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, txManager: txManager}
}

// Execute 执行上架
func (uc *CreateBookUseCase) Execute(ctx context.Context, params book.CreateParams) (*book.Book, error) {
	var created *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.bookService.Create(txCtx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBookUseCase 图书部分更新用例（管理员）
type UpdateBookUseCase struct {
	bookService book.Service
	txManager   TxManager
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, txManager TxManager) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, txManager: txManager}
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, params book.UpdateParams) (*book.Book, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.bookService.Update(txCtx, id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
