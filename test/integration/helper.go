package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试直接打真实的HTTP接口,运行前需要:
// 1. 启动MySQL/Redis并执行 go run ./cmd/api
// 2. 数据库中存在种子管理员账号 admin/admin123
// 服务未启动时测试自动跳过

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second

	// AdminName 种子管理员账号
	AdminName = "admin"
	// AdminPassword 种子管理员密码
	AdminPassword = "admin123"
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// BookData 图书响应数据
type BookData struct {
	BookID uint   `json:"book_id"`
	BookNo string `json:"book_no"`
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
}

// BorrowData 借阅响应数据
type BorrowData struct {
	BorrowID uint   `json:"borrow_id"`
	BookID   uint   `json:"book_id"`
	UserID   uint   `json:"user_id"`
	Status   string `json:"status"`
	Stock    int    `json:"stock"`
}

// StockRecordData 入库响应数据
type StockRecordData struct {
	RecordID uint `json:"record_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
	Stock    int  `json:"stock"`
}

// RequireServer 检查测试服务是否可用,不可用则跳过
func RequireServer(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("测试服务未启动,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// doJSON 发送带JSON body的请求并解析响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// LoginAdmin 以种子管理员登录并返回Token
func LoginAdmin(t *testing.T) string {
	loginReq := map[string]string{
		"name":     AdminName,
		"password": AdminPassword,
	}

	resp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
	require.Equal(t, 0, resp.Code, "管理员登录失败: %s", resp.Message)

	var data LoginData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析登录响应失败")

	return data.AccessToken
}

// GenerateTestBookNo 生成唯一的测试图书编号
// 使用纳秒时间戳,避免测试重复运行时编号冲突
func GenerateTestBookNo() string {
	return fmt.Sprintf("T%d", time.Now().UnixNano())
}

// CreateTestBook 新建测试图书并返回图书ID
func CreateTestBook(t *testing.T, token string, name string, stock int) uint {
	bookReq := map[string]interface{}{
		"name":       name,
		"author":     "测试作者",
		"book_no":    GenerateTestBookNo(),
		"stock":      stock,
		"publish_at": "2020-01-01",
	}

	resp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.Equal(t, 0, resp.Code, "新建图书失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return data.BookID
}

// GetBookStock 查询图书当前库存
func GetBookStock(t *testing.T, token string, bookID uint) int {
	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var data struct {
		Stock int `json:"stock"`
	}
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return data.Stock
}
