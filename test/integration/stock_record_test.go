package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 入库模块集成测试
// 验证:
// 1. 入库的库存联动与凭证落库
// 2. 撤销入库的扣回,以及在馆不足时的冲突拒绝

// TestStockRecordLifecycle 测试入库-撤销完整流程
func TestStockRecordLifecycle(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	bookID := CreateTestBook(t, token, "《入库流程测试》", 5)

	var recordID uint

	t.Run("入库增加库存", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/stock-records", map[string]interface{}{
			"book_id":  bookID,
			"quantity": 10,
			"remarks":  "集成测试入库",
		}, token)
		require.Equal(t, 0, resp.Code, "入库失败: %s", resp.Message)

		var data StockRecordData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		assert.NotZero(t, data.RecordID)
		assert.Equal(t, 15, data.Stock, "库存应该从5涨到15")
		recordID = data.RecordID
	})

	t.Run("撤销入库扣回库存", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/stock-records/%d", BaseURL, recordID), token)
		require.Equal(t, 0, resp.Code, "撤销入库失败: %s", resp.Message)

		assert.Equal(t, 5, GetBookStock(t, token, bookID), "库存应该扣回到入库前")
	})
}

// TestStockRecord_InvalidQuantity 测试非法入库数量
func TestStockRecord_InvalidQuantity(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	bookID := CreateTestBook(t, token, "《入库参数测试》", 5)

	for _, quantity := range []int{0, -3} {
		resp := PostJSON(t, BaseURL+"/stock-records", map[string]interface{}{
			"book_id":  bookID,
			"quantity": quantity,
		}, token)
		assert.NotEqual(t, 0, resp.Code, "数量%d应该被拒绝", quantity)
	}

	assert.Equal(t, 5, GetBookStock(t, token, bookID), "失败的入库不应该动库存")
}

// TestStockRecord_DeleteConflict 测试在馆不足时撤销入库被拒绝
// 入库10本后借走部分,撤销要扣回10本但在馆不足:
// 撤销失败,记录保留,库存不动
func TestStockRecord_DeleteConflict(t *testing.T) {
	RequireServer(t)
	token := LoginAdmin(t)

	// 初始库存0,入库10本
	bookID := CreateTestBook(t, token, "《撤销冲突测试》", 0)

	inResp := PostJSON(t, BaseURL+"/stock-records", map[string]interface{}{
		"book_id":  bookID,
		"quantity": 10,
	}, token)
	require.Equal(t, 0, inResp.Code, "入库失败: %s", inResp.Message)

	var record StockRecordData
	require.NoError(t, json.Unmarshal(inResp.Data, &record))
	require.Equal(t, 10, record.Stock)

	// 借走2本,在馆只剩8本
	for i := 0; i < 2; i++ {
		borrowResp := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
			"book_id": bookID,
		}, token)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)
	}
	require.Equal(t, 8, GetBookStock(t, token, bookID))

	// 撤销入库要扣回10本,在馆不足,应该被拒绝
	delResp := DeleteJSON(t, fmt.Sprintf("%s/stock-records/%d", BaseURL, record.RecordID), token)
	assert.NotEqual(t, 0, delResp.Code, "在馆不足时撤销应该失败")
	t.Logf("✓ 撤销冲突正确被拒绝: %s", delResp.Message)

	// 记录保留,库存不动
	assert.Equal(t, 8, GetBookStock(t, token, bookID), "失败的撤销不应该动库存")

	listResp := GetJSON(t, BaseURL+"/stock-records?page=1&page_size=100", token)
	require.Equal(t, 0, listResp.Code)
}
