package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/service"
	"labwhere/backend/pkg/response"
)

// LabwareHandler 实验耗材模块 HTTP 处理器
type LabwareHandler struct {
	labwareSvc service.LabwareService
}

// NewLabwareHandler 创建 LabwareHandler
func NewLabwareHandler(labwareSvc service.LabwareService) *LabwareHandler {
	return &LabwareHandler{labwareSvc: labwareSvc}
}

// ListLabwares 获取耗材列表（分页）
// GET /api/v1/labwares?location_id=1&page=1&page_size=20
func (h *LabwareHandler) ListLabwares(c *gin.Context) {
	var req dto.LabwareListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	labwares, total, err := h.labwareSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, labwares, total, req.GetPage(), req.GetPageSize())
}

// GetLabware 获取耗材详情
// GET /api/v1/labwares/:id
func (h *LabwareHandler) GetLabware(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	labware, err := h.labwareSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLabwareError(c, err)
		return
	}

	response.OK(c, labware)
}

// GetLabwareByBarcode 按条码获取耗材
// GET /api/v1/labwares/barcode/:barcode
func (h *LabwareHandler) GetLabwareByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, 10001, "条码不能为空")
		return
	}

	labware, err := h.labwareSvc.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.handleLabwareError(c, err)
		return
	}

	response.OK(c, labware)
}

// CreateLabware 创建耗材
// POST /api/v1/labwares
func (h *LabwareHandler) CreateLabware(c *gin.Context) {
	var req dto.CreateLabwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	labware, err := h.labwareSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLabwareError(c, err)
		return
	}

	response.Created(c, labware)
}

// UpdateLabware 更新耗材（移动耗材即更新 location_id）
// PUT /api/v1/labwares/:id
func (h *LabwareHandler) UpdateLabware(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLabwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	labware, err := h.labwareSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLabwareError(c, err)
		return
	}

	response.OK(c, labware)
}

// DeleteLabware 删除耗材
// DELETE /api/v1/labwares/:id
func (h *LabwareHandler) DeleteLabware(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.labwareSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLabwareError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleLabwareError 统一处理耗材模块业务错误
func (h *LabwareHandler) handleLabwareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLabwareNotFound):
		response.NotFound(c, 22001, "耗材不存在")
	case errors.Is(err, service.ErrLabwareLocationMissing):
		response.Conflict(c, 22002, "引用的位置不存在")
	default:
		response.InternalError(c)
	}
}
