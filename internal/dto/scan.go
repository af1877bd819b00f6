package dto

// ── 扫描模块 DTO ──

// ScanRequest 扫描请求：一个位置条码 + 一批耗材条码
// 对应扫码枪的一次操作：先扫位置，再逐一扫耗材
type ScanRequest struct {
	LocationBarcode string   `json:"location_barcode" binding:"required"`
	LabwareBarcodes []string `json:"labware_barcodes" binding:"required,min=1,max=500,dive,required"`
}

// ScanResponse 扫描结果响应
type ScanResponse struct {
	ID        uint              `json:"id"`
	Message   string            `json:"message"`
	Location  LocationResponse  `json:"location"`
	Labwares  []LabwareResponse `json:"labwares"`
	CreatedAt string            `json:"created_at"`
}
