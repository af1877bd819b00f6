package dto

// ── 实验耗材模块 DTO ──

// CreateLabwareRequest 创建耗材请求
// location_id 缺省时耗材归属 UNKNOWN 位置
type CreateLabwareRequest struct {
	Barcode    string `json:"barcode"     binding:"required,min=1,max=120"`
	LocationID *uint  `json:"location_id" binding:"omitempty"`
}

// UpdateLabwareRequest 更新耗材请求（更新 location_id 即移动耗材）
type UpdateLabwareRequest struct {
	Barcode    *string `json:"barcode"     binding:"omitempty,min=1,max=120"`
	LocationID *uint   `json:"location_id" binding:"omitempty"`
}

// LabwareListRequest 耗材列表查询参数
type LabwareListRequest struct {
	PaginationRequest
	LocationID *uint `form:"location_id"`
}

// LabwareResponse 耗材信息响应
type LabwareResponse struct {
	ID         uint   `json:"id"`
	Barcode    string `json:"barcode"`
	LocationID uint   `json:"location_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
