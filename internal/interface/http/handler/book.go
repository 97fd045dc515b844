package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/yushu/bookadmin/internal/application/book"
	"github.com/yushu/bookadmin/internal/interface/http/dto"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  管理员录入新图书(含初始库存)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.CreateBookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "图书编号已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	publishAt, _ := time.Parse("2006-01-02", req.PublishAt)

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Name:        req.Name,
		Author:      req.Author,
		BookNo:      req.BookNo,
		Cover:       req.Cover,
		Description: req.Description,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		PublishAt:   publishAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  管理员更新图书信息,可同时调整库存基准
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	publishAt, _ := time.Parse("2006-01-02", req.PublishAt)

	err = h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      bookID,
		Name:        req.Name,
		Author:      req.Author,
		BookNo:      req.BookNo,
		Cover:       req.Cover,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PublishAt:   publishAt,
		Stock:       req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  管理员删除图书(存在借阅/入库记录时拒绝)
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "图书存在借阅或入库记录"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookListItem}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询,支持按书名/作者模糊搜索、按分类过滤
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        name query string false "书名"
// @Param        author query string false "作者"
// @Param        category query int false "分类ID"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookListItem}}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Name:     req.Name,
		Author:   req.Author,
		Category: req.Category,
		All:      req.All,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}

// parseIDParam 解析路径参数:id
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidParams
	}
	return uint(id), nil
}
