package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车行
// 同一设备内 line_id 唯一；unit_price 在加入购物车时定格，合并时不刷新
type CartItem struct {
	ID           uint           `gorm:"primarykey" json:"-"`                                        // 主键
	DeviceID     string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_device_line" json:"-"` // 设备ID
	LineID       string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_cart_device_line" json:"line_id"` // 行标识（kind-product-variant 派生）
	Kind         string         `gorm:"type:varchar(20);not null" json:"kind"`                      // standard / custom
	ProductID    *uint          `gorm:"index" json:"product_id,omitempty"`                          // 商品ID（standard）
	VariantID    *uint          `json:"variant_id,omitempty"`                                       // 规格ID（standard，可空）
	DisplayName  string         `gorm:"type:varchar(255);not null" json:"display_name"`             // 展示名称
	VariantLabel string         `gorm:"type:varchar(100)" json:"variant_label,omitempty"`           // 规格标签
	UnitPrice    Money          `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`    // 单价（加入时定格）
	Quantity     int            `gorm:"not null" json:"quantity"`                                   // 数量
	CustomConfig JSON           `gorm:"type:json" json:"custom_config,omitempty"`                   // 定制蛋糕配置（custom）
	MessageOnCake string        `gorm:"type:varchar(50)" json:"message_on_cake,omitempty"`          // 蛋糕寄语
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal 行小计（单价 × 数量，派生值）
func (i CartItem) Subtotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// IsCustom 是否定制蛋糕行
func (i CartItem) IsCustom() bool {
	return i.Kind == "custom"
}
