package service

import (
	"time"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
)

// CakeSelection 单个分类下的选中项快照
type CakeSelection struct {
	OptionID uint         `json:"option_id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
}

// CakeBuild 定制蛋糕流程状态
// 选项 ID 按分类独立计数，selections 以分类为键各存一项
type CakeBuild struct {
	Step       int                      `json:"step"`
	Selections map[string]CakeSelection `json:"selections"`
	Message    string                   `json:"message"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// NewCakeBuild 创建空白定制流程
func NewCakeBuild() *CakeBuild {
	return &CakeBuild{
		Step:       constants.CakeBuildStepMin,
		Selections: map[string]CakeSelection{},
		UpdatedAt:  time.Now(),
	}
}

// Toggle 切换某分类的选中项
// 重复选择同一选项视为取消；同分类换选直接覆盖
func (b *CakeBuild) Toggle(category string, selection CakeSelection) {
	if b.Selections == nil {
		b.Selections = map[string]CakeSelection{}
	}
	if current, ok := b.Selections[category]; ok && current.OptionID == selection.OptionID {
		delete(b.Selections, category)
	} else {
		b.Selections[category] = selection
	}
	b.UpdatedAt = time.Now()
}

// Price 当前价格（基数加上各分类选中项价格之和）
func (b *CakeBuild) Price() models.Money {
	total := models.NewMoneyFromInt(constants.CakeBasePrice)
	for _, category := range constants.CakeCategories {
		if selection, ok := b.Selections[category]; ok {
			total = total.Add(selection.Price)
		}
	}
	return total
}

// Complete 四个分类是否均已选中
func (b *CakeBuild) Complete() bool {
	for _, category := range constants.CakeCategories {
		if _, ok := b.Selections[category]; !ok {
			return false
		}
	}
	return true
}

// SetStep 跳转步骤
func (b *CakeBuild) SetStep(step int) error {
	if step < constants.CakeBuildStepMin || step > constants.CakeBuildStepMax {
		return ErrCakeStepInvalid
	}
	b.Step = step
	b.UpdatedAt = time.Now()
	return nil
}

// SetMessage 设置蛋糕寄语
func (b *CakeBuild) SetMessage(message string) error {
	if len([]rune(message)) > constants.CakeMessageMax {
		return ErrCakeMessageTooLong
	}
	b.Message = message
	b.UpdatedAt = time.Now()
	return nil
}

// Config 导出购物车与订单可携带的配置快照
func (b *CakeBuild) Config() models.JSON {
	config := models.JSON{}
	for _, category := range constants.CakeCategories {
		if selection, ok := b.Selections[category]; ok {
			config[category] = map[string]interface{}{
				"option_id": selection.OptionID,
				"name":      selection.Name,
				"price":     selection.Price.String(),
			}
		}
	}
	if b.Message != "" {
		config["message"] = b.Message
	}
	return config
}
