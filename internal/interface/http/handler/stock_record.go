package handler

import (
	"github.com/gin-gonic/gin"

	appstockrecord "github.com/yushu/bookadmin/internal/application/stockrecord"
	"github.com/yushu/bookadmin/internal/interface/http/dto"
	"github.com/yushu/bookadmin/internal/interface/http/middleware"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/response"
)

// StockRecordHandler 入库记录HTTP处理器
type StockRecordHandler struct {
	createUseCase *appstockrecord.CreateStockRecordUseCase
	deleteUseCase *appstockrecord.DeleteStockRecordUseCase
	listUseCase   *appstockrecord.ListStockRecordsUseCase
}

// NewStockRecordHandler 创建入库记录处理器
func NewStockRecordHandler(
	createUseCase *appstockrecord.CreateStockRecordUseCase,
	deleteUseCase *appstockrecord.DeleteStockRecordUseCase,
	listUseCase *appstockrecord.ListStockRecordsUseCase,
) *StockRecordHandler {
	return &StockRecordHandler{
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
	}
}

// CreateStockRecord 入库
// @Summary      图书入库
// @Description  管理员入库:库存增加与入库凭证写入在同一事务内
// @Tags         入库
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateStockRecordRequest true "入库信息"
// @Success      200 {object} response.Response{data=appstockrecord.CreateStockRecordResponse}
// @Failure      400 {object} response.Response "入库数量必须大于0"
// @Failure      401 {object} response.Response "无权限"
// @Router       /api/v1/stock-records [post]
func (h *StockRecordHandler) CreateStockRecord(c *gin.Context) {
	var req dto.CreateStockRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appstockrecord.CreateStockRecordRequest{
		BookID:         req.BookID,
		AdminID:        middleware.GetUserID(c),
		Quantity:       req.Quantity,
		SignatureImage: req.SignatureImage,
		Remarks:        req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteStockRecord 删除入库记录
// @Summary      删除入库记录(撤销入库)
// @Description  扣回当初入库的数量;在馆数量不足时返回40001,记录保留
// @Tags         入库
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "入库记录ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "库存不足,撤销被拒绝"
// @Failure      404 {object} response.Response "入库记录不存在"
// @Router       /api/v1/stock-records/{id} [delete]
func (h *StockRecordHandler) DeleteStockRecord(c *gin.Context) {
	recordID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), recordID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListStockRecords 入库记录列表
// @Summary      入库记录列表
// @Description  分页查询,支持按书名/操作人过滤
// @Tags         入库
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        book_name query string false "书名"
// @Param        admin_name query string false "操作人"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appstockrecord.StockRecordListItem}}
// @Router       /api/v1/stock-records [get]
func (h *StockRecordHandler) ListStockRecords(c *gin.Context) {
	var req dto.ListStockRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appstockrecord.ListStockRecordsRequest{
		Page:      req.Page,
		PageSize:  req.PageSize,
		BookName:  req.BookName,
		AdminName: req.AdminName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
}
