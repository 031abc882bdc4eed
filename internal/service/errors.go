package service

import "errors"

var (
	// ErrInvalidCartItem 购物车入参非法
	ErrInvalidCartItem = errors.New("购物车项参数非法")
	// ErrCartItemNotFound 购物车行不存在
	ErrCartItemNotFound = errors.New("购物车项不存在")
	// ErrCartEmpty 购物车为空
	ErrCartEmpty = errors.New("购物车为空")

	// ErrCakeBuildNotFound 定制流程未开始或已过期
	ErrCakeBuildNotFound = errors.New("定制流程不存在")
	// ErrCakeBuildDisabled 定制功能未开放
	ErrCakeBuildDisabled = errors.New("定制功能未开放")
	// ErrCakeStepInvalid 定制步骤非法
	ErrCakeStepInvalid = errors.New("定制步骤非法")
	// ErrCakeCategoryInvalid 定制选项分类非法
	ErrCakeCategoryInvalid = errors.New("定制选项分类非法")
	// ErrCakeOptionInvalid 定制选项不存在
	ErrCakeOptionInvalid = errors.New("定制选项不存在")
	// ErrCakeBuildIncomplete 定制选择不完整
	ErrCakeBuildIncomplete = errors.New("定制选择不完整")
	// ErrCakeMessageTooLong 蛋糕寄语超长
	ErrCakeMessageTooLong = errors.New("蛋糕寄语超长")

	// ErrDeliverySlotInvalid 配送时段非法
	ErrDeliverySlotInvalid = errors.New("配送时段非法")
	// ErrDeliveryDateInvalid 配送日期非法
	ErrDeliveryDateInvalid = errors.New("配送日期非法")
	// ErrDeliveryAddressRequired 配送上门需要收货地址
	ErrDeliveryAddressRequired = errors.New("配送上门需要收货地址")
	// ErrCheckoutInFlight 同一设备存在进行中的下单
	ErrCheckoutInFlight = errors.New("下单正在处理中")
	// ErrOrderNotCancellable 订单当前状态不可取消
	ErrOrderNotCancellable = errors.New("订单当前状态不可取消")
	// ErrOrderStatusInvalid 订单状态流转非法
	ErrOrderStatusInvalid = errors.New("订单状态流转非法")
	// ErrPaymentStatusInvalid 支付状态非法
	ErrPaymentStatusInvalid = errors.New("支付状态非法")

	// ErrUpstreamUnavailable 上游服务不可用
	ErrUpstreamUnavailable = errors.New("上游服务不可用")
	// ErrEmailConfigIncomplete 邮件配置不完整
	ErrEmailConfigIncomplete = errors.New("邮件配置不完整")
)
