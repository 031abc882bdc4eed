package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrDeviceTokenInvalid 设备令牌非法
var ErrDeviceTokenInvalid = errors.New("设备令牌非法")

// DeviceClaims 设备会话令牌载荷
// 只携带设备 ID，购物车与定制流程按它隔离
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// NewDeviceID 生成新设备 ID
func NewDeviceID() string {
	return uuid.NewString()
}

// SignDeviceToken 签发设备会话令牌
func SignDeviceToken(secretKey, deviceID string, expire time.Duration) (string, error) {
	if strings.TrimSpace(secretKey) == "" || strings.TrimSpace(deviceID) == "" {
		return "", ErrDeviceTokenInvalid
	}
	now := time.Now()
	claims := DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ParseDeviceToken 解析设备会话令牌
func ParseDeviceToken(secretKey, tokenString string) (string, error) {
	if strings.TrimSpace(secretKey) == "" || strings.TrimSpace(tokenString) == "" {
		return "", ErrDeviceTokenInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &DeviceClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || strings.TrimSpace(claims.DeviceID) == "" {
		return "", ErrDeviceTokenInvalid
	}
	return claims.DeviceID, nil
}
