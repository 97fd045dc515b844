package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/yushu/bookadmin/internal/application/category"
	"github.com/yushu/bookadmin/internal/interface/http/dto"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	manageUseCase *appcategory.ManageCategoriesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(manageUseCase *appcategory.ManageCategoriesUseCase) *CategoryHandler {
	return &CategoryHandler{manageUseCase: manageUseCase}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CreateCategoryResponse}
// @Failure      404 {object} response.Response "上级分类不存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.CreateCategory(c.Request.Context(), appcategory.CreateCategoryRequest{
		Name:        req.Name,
		Level:       req.Level,
		ParentLevel: req.ParentLevel,
		ParentID:    req.ParentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	err = h.manageUseCase.UpdateCategory(c.Request.Context(), appcategory.UpdateCategoryRequest{
		CategoryID:  categoryID,
		Name:        req.Name,
		Level:       req.Level,
		ParentLevel: req.ParentLevel,
		ParentID:    req.ParentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  连同下级分类一起删除
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.manageUseCase.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  tree=true返回分类树,level过滤层级,默认返回分类树
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        level query int false "层级(1或2)"
// @Param        tree query bool false "是否返回分类树"
// @Success      200 {object} response.Response{data=[]appcategory.CategoryItem}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var req dto.ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if req.Level != 0 {
		result, err := h.manageUseCase.ListByLevel(c.Request.Context(), req.Level)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, result)
		return
	}

	result, err := h.manageUseCase.ListTree(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
