package dto

// ── 位置类型模块 DTO ──

// CreateLocationTypeRequest 创建位置类型请求
type CreateLocationTypeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=60"`
}

// UpdateLocationTypeRequest 更新位置类型请求
type UpdateLocationTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=60"`
}

// LocationTypeResponse 位置类型信息响应
type LocationTypeResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
