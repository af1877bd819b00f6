package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/service"
	"labwhere/backend/pkg/response"
)

// ScanHandler 扫描模块 HTTP 处理器
type ScanHandler struct {
	scanSvc service.ScanService
}

// NewScanHandler 创建 ScanHandler
func NewScanHandler(scanSvc service.ScanService) *ScanHandler {
	return &ScanHandler{scanSvc: scanSvc}
}

// Scan 扫描入位
// POST /api/v1/scans
func (h *ScanHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scanSvc.Scan(c.Request.Context(), &req)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.Created(c, result)
}

// handleScanError 统一处理扫描模块业务错误
func (h *ScanHandler) handleScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScanLocationNotFound):
		response.NotFound(c, 23001, "位置条码不存在")
	default:
		response.InternalError(c)
	}
}
