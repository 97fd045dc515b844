package book

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/borrow"
	"github.com/yushu/bookadmin/internal/domain/category"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
)

// 图书用例单元测试
// 重点验证:
// 1. 库存基准调整走差值+AdjustStock,元信息更新不触碰库存
// 2. 被借阅/入库记录引用的图书不能删除

// ==================== 内存仓储 ====================

type fakeBookRepo struct {
	mu     sync.Mutex
	nextID uint
	books  map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	repo := &fakeBookRepo{nextID: 100, books: make(map[uint]*book.Book)}
	for _, b := range books {
		repo.books[b.ID] = b
	}
	return repo
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	stock := stored.Stock
	cp := *b
	cp.Stock = stock // Update只更新元信息,不触碰stock字段
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) AdjustStock(ctx context.Context, id uint, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return 0, book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return 0, book.ErrOutOfStock
	}
	b.Stock += delta
	return b.Stock, nil
}

func (r *fakeBookRepo) get(id uint) *book.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id]
}

type fakeCategoryRepo struct {
	categories map[uint]*category.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *category.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint) error              { return nil }
func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) ListByLevel(ctx context.Context, level int) ([]*category.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) ListRoots(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}

// countingBorrowRepo 只实现引用计数的借阅仓储
type countingBorrowRepo struct {
	count int64
}

func (r *countingBorrowRepo) Create(ctx context.Context, b *borrow.Borrow) error { return nil }
func (r *countingBorrowRepo) FindByID(ctx context.Context, id uint) (*borrow.Borrow, error) {
	return nil, borrow.ErrBorrowNotFound
}
func (r *countingBorrowRepo) Update(ctx context.Context, b *borrow.Borrow) error { return nil }
func (r *countingBorrowRepo) Delete(ctx context.Context, id uint) error          { return nil }
func (r *countingBorrowRepo) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	return r.count, nil
}
func (r *countingBorrowRepo) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	return r.count, nil
}
func (r *countingBorrowRepo) List(ctx context.Context, params borrow.ListParams) ([]*borrow.Borrow, int64, error) {
	return nil, 0, nil
}

// countingRecordRepo 只实现引用计数的入库仓储
type countingRecordRepo struct {
	count int64
}

func (r *countingRecordRepo) Create(ctx context.Context, record *stockrecord.StockRecord) error {
	return nil
}
func (r *countingRecordRepo) FindByID(ctx context.Context, id uint) (*stockrecord.StockRecord, error) {
	return nil, stockrecord.ErrStockRecordNotFound
}
func (r *countingRecordRepo) Delete(ctx context.Context, id uint) error { return nil }
func (r *countingRecordRepo) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	return r.count, nil
}
func (r *countingRecordRepo) SumQuantityByBookID(ctx context.Context, bookID uint) (int64, error) {
	return 0, nil
}
func (r *countingRecordRepo) List(ctx context.Context, params stockrecord.ListParams) ([]*stockrecord.StockRecord, int64, error) {
	return nil, 0, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ==================== 创建图书 ====================

// TestCreateBook 测试创建图书
func TestCreateBook(t *testing.T) {
	bookRepo := newFakeBookRepo()
	categoryRepo := &fakeCategoryRepo{categories: map[uint]*category.Category{
		3: {ID: 3, Name: "计算机"},
	}}

	uc := NewCreateBookUseCase(bookRepo, categoryRepo)

	resp, err := uc.Execute(context.Background(), CreateBookRequest{
		Name:       "《Go程序设计语言》",
		Author:     "Alan Donovan",
		BookNo:     "B001",
		Stock:      10,
		CategoryID: 3,
		PublishAt:  time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.BookID)
	assert.Equal(t, 10, resp.Stock, "初始库存应该随图书一起写入")
}

// TestCreateBook_NegativeStock 测试负库存被拒绝
func TestCreateBook_NegativeStock(t *testing.T) {
	uc := NewCreateBookUseCase(newFakeBookRepo(), &fakeCategoryRepo{})

	_, err := uc.Execute(context.Background(), CreateBookRequest{
		Name:   "《测试》",
		BookNo: "B002",
		Stock:  -1,
	})
	assert.Equal(t, book.ErrInvalidStock, err)
}

// TestCreateBook_CategoryNotFound 测试分类不存在
func TestCreateBook_CategoryNotFound(t *testing.T) {
	uc := NewCreateBookUseCase(newFakeBookRepo(), &fakeCategoryRepo{categories: map[uint]*category.Category{}})

	_, err := uc.Execute(context.Background(), CreateBookRequest{
		Name:       "《测试》",
		BookNo:     "B003",
		Stock:      5,
		CategoryID: 99,
	})
	assert.Equal(t, category.ErrCategoryNotFound, err)
}

// ==================== 更新图书 ====================

// TestUpdateBook_StockBaseline 测试库存基准调整
// 把库存从10改成15,内部应该走差值+5的AdjustStock
func TestUpdateBook_StockBaseline(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Name: "《测试》", BookNo: "B001", Stock: 10})

	uc := NewUpdateBookUseCase(bookRepo, &fakeCategoryRepo{}, fakeTxManager{})

	newStock := 15
	err := uc.Execute(context.Background(), UpdateBookRequest{
		BookID: 1,
		Stock:  &newStock,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, bookRepo.get(1).Stock)
}

// TestUpdateBook_MetadataKeepsStock 测试元信息更新不触碰库存
func TestUpdateBook_MetadataKeepsStock(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Name: "《旧书名》", BookNo: "B001", Stock: 7})

	uc := NewUpdateBookUseCase(bookRepo, &fakeCategoryRepo{}, fakeTxManager{})

	err := uc.Execute(context.Background(), UpdateBookRequest{
		BookID: 1,
		Name:   "《新书名》",
		// Stock为nil:不调整库存基准
	})
	require.NoError(t, err)

	updated := bookRepo.get(1)
	assert.Equal(t, "《新书名》", updated.Name)
	assert.Equal(t, 7, updated.Stock, "只改元信息时库存不应该变化")
}

// TestUpdateBook_NegativeStock 测试负的库存基准被拒绝
func TestUpdateBook_NegativeStock(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 10})

	uc := NewUpdateBookUseCase(bookRepo, &fakeCategoryRepo{}, fakeTxManager{})

	negative := -5
	err := uc.Execute(context.Background(), UpdateBookRequest{
		BookID: 1,
		Stock:  &negative,
	})
	assert.Equal(t, book.ErrInvalidStock, err)
	assert.Equal(t, 10, bookRepo.get(1).Stock)
}

// ==================== 删除图书 ====================

// TestDeleteBook 测试删除无引用的图书
func TestDeleteBook(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})

	uc := NewDeleteBookUseCase(bookRepo, &countingBorrowRepo{count: 0}, &countingRecordRepo{count: 0}, fakeTxManager{})

	err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	_, err = bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, book.ErrBookNotFound, err)
}

// TestDeleteBook_ReferencedByBorrow 测试有借阅记录的图书不能删除
func TestDeleteBook_ReferencedByBorrow(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})

	uc := NewDeleteBookUseCase(bookRepo, &countingBorrowRepo{count: 2}, &countingRecordRepo{count: 0}, fakeTxManager{})

	err := uc.Execute(context.Background(), 1)
	assert.Equal(t, book.ErrBookReferenced, err)

	_, findErr := bookRepo.FindByID(context.Background(), 1)
	assert.NoError(t, findErr, "删除被拒绝后图书应该还在")
}

// TestDeleteBook_ReferencedByStockRecord 测试有入库记录的图书不能删除
func TestDeleteBook_ReferencedByStockRecord(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})

	uc := NewDeleteBookUseCase(bookRepo, &countingBorrowRepo{count: 0}, &countingRecordRepo{count: 1}, fakeTxManager{})

	err := uc.Execute(context.Background(), 1)
	assert.Equal(t, book.ErrBookReferenced, err)
}
