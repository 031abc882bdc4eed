package repository

import (
	"errors"

	"github.com/ronoos/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByDevice(deviceID string) ([]models.CartItem, error)
	GetByDeviceAndLine(deviceID, lineID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(deviceID, lineID string, quantity int) error
	DeleteByDeviceAndLine(deviceID, lineID string) error
	ClearByDevice(deviceID string) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListByDevice 获取设备购物车行（按加入顺序）
func (r *GormCartRepository) ListByDevice(deviceID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("device_id = ?", deviceID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByDeviceAndLine 查找指定行，不存在返回 nil
func (r *GormCartRepository) GetByDeviceAndLine(deviceID, lineID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("device_id = ? AND line_id = ?", deviceID, lineID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车行
func (r *GormCartRepository) Create(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// UpdateQuantity 直接设置行数量
func (r *GormCartRepository) UpdateQuantity(deviceID, lineID string, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("device_id = ? AND line_id = ?", deviceID, lineID).
		Update("quantity", quantity).Error
}

// DeleteByDeviceAndLine 删除指定行（不存在时为无操作）
func (r *GormCartRepository) DeleteByDeviceAndLine(deviceID, lineID string) error {
	return r.db.Where("device_id = ? AND line_id = ?", deviceID, lineID).Delete(&models.CartItem{}).Error
}

// ClearByDevice 清空设备购物车
func (r *GormCartRepository) ClearByDevice(deviceID string) error {
	return r.db.Where("device_id = ?", deviceID).Delete(&models.CartItem{}).Error
}
