package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/service"
	"labwhere/backend/pkg/response"
)

// LocationHandler 存储位置模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations 获取位置列表
// GET /api/v1/locations?location_type_id=1
func (h *LocationHandler) ListLocations(c *gin.Context) {
	var req dto.LocationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	locations, err := h.locationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": locations})
}

// GetLocation 获取位置详情
// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	location, err := h.locationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// GetLocationByBarcode 按条码获取位置
// GET /api/v1/locations/barcode/:barcode
func (h *LocationHandler) GetLocationByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, 10001, "条码不能为空")
		return
	}

	location, err := h.locationSvc.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// ListLocationLabwares 获取位置下的耗材
// GET /api/v1/locations/:id/labwares
func (h *LocationHandler) ListLocationLabwares(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	labwares, err := h.locationSvc.ListLabwares(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": labwares})
}

// CreateLocation 创建位置
// POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.Created(c, location)
}

// UpdateLocation 更新位置
// PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// DeleteLocation 删除位置
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.locationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLocationError 统一处理位置模块业务错误
func (h *LocationHandler) handleLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 21001, "位置不存在")
	case errors.Is(err, service.ErrLocationInUse):
		response.Conflict(c, 21002, "位置下仍有耗材，无法删除")
	case errors.Is(err, service.ErrLocationTypeMissing):
		response.Conflict(c, 21003, "引用的位置类型不存在")
	case errors.Is(err, service.ErrInvalidLocationName):
		response.BadRequest(c, 21004, "位置名称格式不正确")
	default:
		response.InternalError(c)
	}
}
