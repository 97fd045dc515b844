package handler

import (
	"github.com/gin-gonic/gin"

	appborrow "github.com/yushu/bookadmin/internal/application/borrow"
	"github.com/yushu/bookadmin/internal/interface/http/dto"
	"github.com/yushu/bookadmin/internal/interface/http/middleware"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/response"
)

// BorrowHandler 借阅HTTP处理器
type BorrowHandler struct {
	createBorrowUseCase *appborrow.CreateBorrowUseCase
	returnBorrowUseCase *appborrow.ReturnBorrowUseCase
	deleteBorrowUseCase *appborrow.DeleteBorrowUseCase
	listBorrowsUseCase  *appborrow.ListBorrowsUseCase
}

// NewBorrowHandler 创建借阅处理器
func NewBorrowHandler(
	createBorrowUseCase *appborrow.CreateBorrowUseCase,
	returnBorrowUseCase *appborrow.ReturnBorrowUseCase,
	deleteBorrowUseCase *appborrow.DeleteBorrowUseCase,
	listBorrowsUseCase *appborrow.ListBorrowsUseCase,
) *BorrowHandler {
	return &BorrowHandler{
		createBorrowUseCase: createBorrowUseCase,
		returnBorrowUseCase: returnBorrowUseCase,
		deleteBorrowUseCase: deleteBorrowUseCase,
		listBorrowsUseCase:  listBorrowsUseCase,
	}
}

// CreateBorrow 借书
// @Summary      借书
// @Description  库存扣减与借阅记录创建在同一事务内完成,库存不足返回40001
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBorrowRequest true "借书请求"
// @Success      200 {object} response.Response{data=appborrow.CreateBorrowResponse}
// @Failure      400 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/borrows [post]
func (h *BorrowHandler) CreateBorrow(c *gin.Context) {
	var req dto.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 借阅人默认为当前登录用户,管理员可代他人登记
	userID := req.UserID
	if userID == 0 {
		userID = middleware.GetUserID(c)
	}

	result, err := h.createBorrowUseCase.Execute(c.Request.Context(), appborrow.CreateBorrowRequest{
		BookID: req.BookID,
		UserID: userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReturnBorrow 还书
// @Summary      还书
// @Description  状态转换(借出中→已归还)与库存回补在同一事务内,重复归还返回40002
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appborrow.ReturnBorrowResponse}
// @Failure      400 {object} response.Response "重复归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/borrows/{id}/return [put]
func (h *BorrowHandler) ReturnBorrow(c *gin.Context) {
	borrowID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.returnBorrowUseCase.Execute(c.Request.Context(), borrowID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBorrow 删除借阅记录
// @Summary      删除借阅记录
// @Description  管理员操作;删除借出中的记录会先补偿库存(+1)
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/borrows/{id} [delete]
func (h *BorrowHandler) DeleteBorrow(c *gin.Context) {
	borrowID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteBorrowUseCase.Execute(c.Request.Context(), borrowID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBorrows 借阅记录列表
// @Summary      借阅记录列表
// @Description  分页查询,支持按书名/借阅人/作者/状态过滤
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        book_name query string false "书名"
// @Param        user_name query string false "借阅人"
// @Param        status query int false "状态(1借出中 2已归还)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appborrow.BorrowListItem}}
// @Router       /api/v1/borrows [get]
func (h *BorrowHandler) ListBorrows(c *gin.Context) {
	var req dto.ListBorrowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBorrowsUseCase.Execute(c.Request.Context(), appborrow.ListBorrowsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		BookName: req.BookName,
		UserName: req.UserName,
		Author:   req.Author,
		Status:   req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}
