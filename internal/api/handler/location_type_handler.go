package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/service"
	"labwhere/backend/pkg/response"
)

// LocationTypeHandler 位置类型模块 HTTP 处理器
type LocationTypeHandler struct {
	typeSvc service.LocationTypeService
}

// NewLocationTypeHandler 创建 LocationTypeHandler
func NewLocationTypeHandler(typeSvc service.LocationTypeService) *LocationTypeHandler {
	return &LocationTypeHandler{typeSvc: typeSvc}
}

// ListLocationTypes 获取位置类型列表
// GET /api/v1/location-types
func (h *LocationTypeHandler) ListLocationTypes(c *gin.Context) {
	types, err := h.typeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": types})
}

// GetLocationType 获取位置类型详情
// GET /api/v1/location-types/:id
func (h *LocationTypeHandler) GetLocationType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	lt, err := h.typeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationTypeError(c, err)
		return
	}

	response.OK(c, lt)
}

// CreateLocationType 创建位置类型
// POST /api/v1/location-types
func (h *LocationTypeHandler) CreateLocationType(c *gin.Context) {
	var req dto.CreateLocationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lt, err := h.typeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationTypeError(c, err)
		return
	}

	response.Created(c, lt)
}

// UpdateLocationType 更新位置类型
// PUT /api/v1/location-types/:id
func (h *LocationTypeHandler) UpdateLocationType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lt, err := h.typeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationTypeError(c, err)
		return
	}

	response.OK(c, lt)
}

// DeleteLocationType 删除位置类型
// DELETE /api/v1/location-types/:id
func (h *LocationTypeHandler) DeleteLocationType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.typeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLocationTypeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLocationTypeError 统一处理位置类型模块业务错误
func (h *LocationTypeHandler) handleLocationTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationTypeNotFound):
		response.NotFound(c, 20001, "位置类型不存在")
	case errors.Is(err, service.ErrLocationTypeInUse):
		response.Conflict(c, 20002, "位置类型仍被位置引用，无法删除")
	default:
		response.InternalError(c)
	}
}
