package constants

// 订单状态常量（上游烘焙后端定义，进度展示按此顺序）
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusInKitchen      = "in_kitchen"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

// OrderStatusFlow 订单状态推进顺序（cancelled 为旁路终态）
var OrderStatusFlow = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInKitchen,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusCompleted,
}

// OrderStatusRank 返回状态在推进顺序中的序号，未知状态返回 -1
func OrderStatusRank(status string) int {
	for i, s := range OrderStatusFlow {
		if s == status {
			return i
		}
	}
	return -1
}

// OrderStatusCanCancel 判断订单当前状态是否允许取消
// 仅 pending 可取消
func OrderStatusCanCancel(status string) bool {
	return status == OrderStatusPending
}

// 支付状态常量（无序）
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentStatuses 合法支付状态集合
var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// IsValidPaymentStatus 判断支付状态是否合法
func IsValidPaymentStatus(status string) bool {
	for _, s := range PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 配送方式常量
const (
	DeliveryTypePickup   = "pickup"
	DeliveryTypeDelivery = "delivery"
)

// DeliverySlots 固定配送时段枚举
var DeliverySlots = []string{
	"10:00-11:00 AM",
	"11:00-12:00 PM",
	"12:00-01:00 PM",
	"02:00-03:00 PM",
	"03:00-04:00 PM",
	"04:00-05:00 PM",
}

// IsValidDeliverySlot 判断配送时段是否在枚举内
func IsValidDeliverySlot(slot string) bool {
	for _, s := range DeliverySlots {
		if s == slot {
			return true
		}
	}
	return false
}

// 购物车项类型常量
const (
	CartItemKindStandard = "standard"
	CartItemKindCustom   = "custom"
)

// 购物车行标识占位符（无商品/无规格时参与 line_id 组合）
const (
	CartLineCustomProduct = "custom"
	CartLineNoVariant     = "novariant"
)

// 定制蛋糕选项类目常量（选项 ID 仅在类目内唯一）
const (
	CakeCategoryBase    = "base"
	CakeCategoryFlavour = "flavour"
	CakeCategoryShape   = "shape"
	CakeCategoryWeight  = "weight"
)

// CakeCategories 定制蛋糕类目集合（选择校验按此遍历）
var CakeCategories = []string{
	CakeCategoryBase,
	CakeCategoryFlavour,
	CakeCategoryShape,
	CakeCategoryWeight,
}

// IsValidCakeCategory 判断类目是否合法
func IsValidCakeCategory(category string) bool {
	for _, c := range CakeCategories {
		if c == category {
			return true
		}
	}
	return false
}

// 定制蛋糕向导常量
const (
	CakeBuildStepMin = 1
	CakeBuildStepMax = 5
	CakeBasePrice    = 500 // 定价基数，选项价叠加其上
	CakeMessageMax   = 50  // 蛋糕寄语最大长度
)

// 队列常量
const (
	QueueDefault               = "default"
	TaskOrderConfirmationEmail = "order:confirmation_email"
)

// 缓存键常量
const (
	RedisPrefixDefault    = "rn"
	CacheKeyCakeOptions   = "catalog:cake_options" // 后接 :<category>
	CacheKeyStoreSettings = "catalog:store_settings"
	CacheKeyAuthSnapshot  = "auth:snapshot" // 后接 :<token指纹>
	CacheKeyCakeBuild     = "cakebuild"     // 后接 :<device_id>
)

// 设备会话常量
const (
	DeviceCookieNameDefault = "rn_device"
)

// 用户角色常量（上游定义）
const (
	RoleCustomer = "customer"
	RoleBaker    = "baker"
)
