package stockrecord

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yushu/bookadmin/internal/domain/book"
	"github.com/yushu/bookadmin/internal/domain/stockrecord"
	"github.com/yushu/bookadmin/internal/domain/user"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// 入库用例单元测试
// 重点验证:
// 1. 入库 = 库存增加 + 入库凭证,两者配套
// 2. 仅管理员可入库
// 3. 撤销入库时库存不足:记录保留、库存不动

// ==================== 内存仓储 ====================

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	repo := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		repo.books[b.ID] = b
	}
	return repo
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b
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
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeBookRepo) stock(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id].Stock
}

// setStock 直接改库存,模拟"入库后部分被借出"的前置状态
func (r *fakeBookRepo) setStock(id uint, stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[id].Stock = stock
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]*stockrecord.StockRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{nextID: 1, records: make(map[uint]*stockrecord.StockRecord)}
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *stockrecord.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = r.nextID
	r.nextID++
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) FindByID(ctx context.Context, id uint) (*stockrecord.StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, stockrecord.ErrStockRecordNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *fakeRecordRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return stockrecord.ErrStockRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRecordRepo) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, record := range r.records {
		if record.BookID == bookID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecordRepo) SumQuantityByBookID(ctx context.Context, bookID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, record := range r.records {
		if record.BookID == bookID {
			sum += int64(record.Quantity)
		}
	}
	return sum, nil
}

func (r *fakeRecordRepo) List(ctx context.Context, params stockrecord.ListParams) ([]*stockrecord.StockRecord, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByName(ctx context.Context, name string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (r *fakeUserRepo) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	return nil, 0, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*user.User{
		1: {ID: 1, Name: "admin", Role: user.RoleAdmin, Status: user.StatusOn},
		2: {ID: 2, Name: "reader", Role: user.RoleUser, Status: user.StatusOn},
	}}
}

// ==================== 入库 ====================

// TestCreateStockRecord 测试管理员入库
func TestCreateStockRecord(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Name: "《深入理解计算机系统》", Stock: 5})
	recordRepo := newFakeRecordRepo()

	uc := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})

	resp, err := uc.Execute(context.Background(), CreateStockRecordRequest{
		BookID:         1,
		AdminID:        1,
		Quantity:       10,
		SignatureImage: "data:image/png;base64,xxx",
		Remarks:        "到货一批",
	})
	require.NoError(t, err, "管理员入库应该成功")

	assert.Equal(t, 15, resp.Stock, "库存应该从5涨到15")
	assert.NotZero(t, resp.RecordID, "入库记录ID应该大于0")
	assert.Equal(t, 15, bookRepo.stock(1))

	// 入库凭证应该完整落库
	record, err := recordRepo.FindByID(context.Background(), resp.RecordID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), record.AdminID)
	assert.Equal(t, 10, record.Quantity)
	assert.Equal(t, "data:image/png;base64,xxx", record.SignatureImage)
}

// TestCreateStockRecord_NonAdmin 测试普通用户不能入库
func TestCreateStockRecord_NonAdmin(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})
	recordRepo := newFakeRecordRepo()

	uc := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})

	_, err := uc.Execute(context.Background(), CreateStockRecordRequest{
		BookID:   1,
		AdminID:  2, // 普通用户
		Quantity: 10,
	})
	assert.Equal(t, apperrors.ErrForbidden, err, "普通用户入库应该被拒绝")
	assert.Equal(t, 5, bookRepo.stock(1), "库存不应该变化")

	count, _ := recordRepo.CountByBookID(context.Background(), 1)
	assert.Zero(t, count, "不应该留下入库记录")
}

// TestCreateStockRecord_InvalidQuantity 测试非法数量
func TestCreateStockRecord_InvalidQuantity(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})
	recordRepo := newFakeRecordRepo()

	uc := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})

	for _, quantity := range []int{0, -3} {
		_, err := uc.Execute(context.Background(), CreateStockRecordRequest{
			BookID:   1,
			AdminID:  1,
			Quantity: quantity,
		})
		assert.Equal(t, stockrecord.ErrInvalidQuantity, err, "数量%d应该被拒绝", quantity)
	}
	assert.Equal(t, 5, bookRepo.stock(1))
}

// TestCreateStockRecord_BookNotFound 测试图书不存在
func TestCreateStockRecord_BookNotFound(t *testing.T) {
	bookRepo := newFakeBookRepo()
	recordRepo := newFakeRecordRepo()

	uc := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})

	_, err := uc.Execute(context.Background(), CreateStockRecordRequest{
		BookID:   999,
		AdminID:  1,
		Quantity: 10,
	})
	assert.Equal(t, book.ErrBookNotFound, err)

	count, _ := recordRepo.CountByBookID(context.Background(), 999)
	assert.Zero(t, count, "图书不存在时不应该留下入库记录")
}

// ==================== 撤销入库 ====================

// TestDeleteStockRecord 测试撤销入库(扣回库存)
func TestDeleteStockRecord(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})
	recordRepo := newFakeRecordRepo()

	createUC := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})
	deleteUC := NewDeleteStockRecordUseCase(recordRepo, bookRepo, fakeTxManager{})

	resp, err := createUC.Execute(context.Background(), CreateStockRecordRequest{
		BookID:   1,
		AdminID:  1,
		Quantity: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 15, bookRepo.stock(1))

	err = deleteUC.Execute(context.Background(), resp.RecordID)
	require.NoError(t, err, "撤销入库应该成功")

	assert.Equal(t, 5, bookRepo.stock(1), "库存应该扣回到入库前")

	_, err = recordRepo.FindByID(context.Background(), resp.RecordID)
	assert.Equal(t, stockrecord.ErrStockRecordNotFound, err, "记录应该已被删除")
}

// TestDeleteStockRecord_OutOfStockConflict 测试库存不足时撤销入库被拒绝
// 入库10本后有8本被借出,在馆只剩2本(不足以扣回10本):
// 撤销失败,记录保留,库存不动,由管理员先催还再撤销
func TestDeleteStockRecord_OutOfStockConflict(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 0})
	recordRepo := newFakeRecordRepo()

	createUC := NewCreateStockRecordUseCase(recordRepo, bookRepo, testUsers(), fakeTxManager{}, NoopPublisher{})
	deleteUC := NewDeleteStockRecordUseCase(recordRepo, bookRepo, fakeTxManager{})

	resp, err := createUC.Execute(context.Background(), CreateStockRecordRequest{
		BookID:   1,
		AdminID:  1,
		Quantity: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 10, bookRepo.stock(1))

	// 模拟8本已被借出
	bookRepo.setStock(1, 2)

	err = deleteUC.Execute(context.Background(), resp.RecordID)
	assert.Equal(t, book.ErrOutOfStock, err, "在馆不足时撤销应该返回库存不足")

	assert.Equal(t, 2, bookRepo.stock(1), "失败的撤销不应该动库存")

	record, err := recordRepo.FindByID(context.Background(), resp.RecordID)
	require.NoError(t, err, "失败的撤销必须保留入库记录")
	assert.Equal(t, 10, record.Quantity)
}

// TestDeleteStockRecord_NotFound 测试撤销不存在的记录
func TestDeleteStockRecord_NotFound(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 5})
	recordRepo := newFakeRecordRepo()

	deleteUC := NewDeleteStockRecordUseCase(recordRepo, bookRepo, fakeTxManager{})

	err := deleteUC.Execute(context.Background(), 999)
	assert.Equal(t, stockrecord.ErrStockRecordNotFound, err)
}
