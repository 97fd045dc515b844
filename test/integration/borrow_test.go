package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 借阅模块集成测试
// 借阅是本项目的核心,这里在真实的MySQL+HTTP栈上验证:
// 1. 借书/还书的库存联动
// 2. 并发借书防超借(悲观锁+原子扣减)
// 3. 重复归还被拒绝
// 4. 删除借阅记录的库存补偿

// TestBorrowLifecycle 测试借书-还书完整流程
func TestBorrowLifecycle(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	bookID := CreateTestBook(t, token, "《借阅流程测试》", 3)

	var borrowID uint

	t.Run("借书扣减库存", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
			"book_id": bookID,
		}, token)
		require.Equal(t, 0, resp.Code, "借书失败: %s", resp.Message)

		var data BorrowData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.NotZero(t, data.BorrowID)
		assert.Equal(t, 2, data.Stock, "库存应该从3扣到2")
		borrowID = data.BorrowID
	})

	t.Run("还书回补库存", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/borrows/%d/return", BaseURL, borrowID), nil, token)
		require.Equal(t, 0, resp.Code, "还书失败: %s", resp.Message)

		var data BorrowData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, 3, data.Stock, "库存应该回补到3")
	})

	t.Run("重复归还被拒绝", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/borrows/%d/return", BaseURL, borrowID), nil, token)
		assert.NotEqual(t, 0, resp.Code, "重复归还应该失败")
		t.Logf("✓ 重复归还正确被拒绝: %s", resp.Message)
	})
}

// TestBorrow_OutOfStock 测试库存为0时借书被拒绝
func TestBorrow_OutOfStock(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	bookID := CreateTestBook(t, token, "《零库存测试》", 0)

	resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
		"book_id": bookID,
	}, token)

	assert.NotEqual(t, 0, resp.Code, "库存为0借书应该失败")
	assert.Equal(t, 0, GetBookStock(t, token, bookID), "库存应该保持为0")
}

// TestBorrow_Concurrent 测试并发借书防超借
// 库存5本,20个并发请求:恰好5个成功,库存归零且绝不为负
func TestBorrow_Concurrent(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	const (
		initialStock = 5
		requests     = 20
	)

	bookID := CreateTestBook(t, token, "《并发借阅测试》", initialStock)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
				"book_id": bookID,
			}, token)

			if resp.Code == 0 {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, initialStock, success, "成功数应该恰好等于初始库存")

	stock := GetBookStock(t, token, bookID)
	assert.Equal(t, 0, stock, "库存应该为0而不是负数")

	t.Logf("✓ %d个并发请求,%d个成功,最终库存%d", requests, success, stock)
}

// TestBorrow_DeleteCompensation 测试删除借阅记录的库存补偿
func TestBorrow_DeleteCompensation(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	bookID := CreateTestBook(t, token, "《删除补偿测试》", 2)

	t.Run("删除借出中的记录补偿库存", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
			"book_id": bookID,
		}, token)
		require.Equal(t, 0, resp.Code, "借书失败: %s", resp.Message)

		var data BorrowData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Equal(t, 1, data.Stock)

		delResp := DeleteJSON(t, fmt.Sprintf("%s/borrows/%d", BaseURL, data.BorrowID), token)
		require.Equal(t, 0, delResp.Code, "删除失败: %s", delResp.Message)

		assert.Equal(t, 2, GetBookStock(t, token, bookID), "删除借出中记录应该补偿库存+1")
	})

	t.Run("删除已归还的记录不补偿", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
			"book_id": bookID,
		}, token)
		require.Equal(t, 0, resp.Code)

		var data BorrowData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		retResp := PutJSON(t, fmt.Sprintf("%s/borrows/%d/return", BaseURL, data.BorrowID), nil, token)
		require.Equal(t, 0, retResp.Code)
		require.Equal(t, 2, GetBookStock(t, token, bookID))

		delResp := DeleteJSON(t, fmt.Sprintf("%s/borrows/%d", BaseURL, data.BorrowID), token)
		require.Equal(t, 0, delResp.Code)

		assert.Equal(t, 2, GetBookStock(t, token, bookID), "删除已归还记录不应该再补偿库存")
	})
}

// TestBorrow_Unauthorized 测试未登录不能借书
func TestBorrow_Unauthorized(t *testing.T) {
	RequireServer(t)

	resp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
		"book_id": 1,
	}, "") // 空token

	assert.NotEqual(t, 0, resp.Code, "未登录借书应该失败")
}
