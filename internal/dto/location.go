package dto

// ── 存储位置模块 DTO ──

// CreateLocationRequest 创建位置请求
// 条码由服务端生成，不接受客户端传入
type CreateLocationRequest struct {
	Name           string `json:"name"             binding:"required,min=1,max=60"`
	LocationTypeID uint   `json:"location_type_id" binding:"required"`
}

// UpdateLocationRequest 更新位置请求
type UpdateLocationRequest struct {
	Name           *string `json:"name"             binding:"omitempty,min=1,max=60"`
	LocationTypeID *uint   `json:"location_type_id" binding:"omitempty"`
}

// LocationListRequest 位置列表查询参数
type LocationListRequest struct {
	LocationTypeID *uint `form:"location_type_id"`
}

// LocationResponse 位置信息响应
type LocationResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Barcode        string `json:"barcode,omitempty"`
	LocationTypeID uint   `json:"location_type_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
