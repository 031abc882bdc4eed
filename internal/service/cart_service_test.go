package service

import (
	"errors"
	"testing"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCartService(t *testing.T) *CartService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartItem{}); err != nil {
		t.Fatalf("auto migrate cart item failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db))
}

func uintPtr(v uint) *uint {
	return &v
}

func TestLineIDDerivation(t *testing.T) {
	standard := LineID(constants.CartItemKindStandard, uintPtr(12), uintPtr(3))
	if standard != "standard-12-3" {
		t.Fatalf("unexpected line id: %q", standard)
	}
	noVariant := LineID(constants.CartItemKindStandard, uintPtr(12), nil)
	if noVariant != "standard-12-novariant" {
		t.Fatalf("unexpected line id: %q", noVariant)
	}
	custom := LineID(constants.CartItemKindCustom, nil, nil)
	if custom != "custom-custom-novariant" {
		t.Fatalf("unexpected line id: %q", custom)
	}
}

func TestAddItemMergesQuantityAndKeepsUnitPrice(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-merge"

	first, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(7),
		VariantID: uintPtr(2),
		UnitPrice: models.NewMoneyFromInt(250),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add first item failed: %v", err)
	}

	// 再次加入同一行，单价变化也不覆盖已有行
	merged, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(7),
		VariantID: uintPtr(2),
		UnitPrice: models.NewMoneyFromInt(300),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("merge item failed: %v", err)
	}
	if merged.LineID != first.LineID {
		t.Fatalf("expected same line, got %q and %q", first.LineID, merged.LineID)
	}
	if merged.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", merged.Quantity)
	}
	if merged.UnitPrice.String() != "250.00" {
		t.Fatalf("expected original unit price kept, got %s", merged.UnitPrice.String())
	}

	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected single line after merge, got %d", len(summary.Items))
	}
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-variants"

	for _, variantID := range []uint{1, 2} {
		if _, err := svc.AddItem(AddCartItemInput{
			DeviceID:  deviceID,
			Kind:      constants.CartItemKindStandard,
			ProductID: uintPtr(5),
			VariantID: uintPtr(variantID),
			UnitPrice: models.NewMoneyFromInt(100),
			Quantity:  1,
		}); err != nil {
			t.Fatalf("add variant %d failed: %v", variantID, err)
		}
	}

	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(summary.Items))
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-zero"

	item, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(9),
		UnitPrice: models.NewMoneyFromInt(150),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.UpdateQuantity(deviceID, item.LineID, 0); err != nil {
		t.Fatalf("update quantity to zero failed: %v", err)
	}

	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(summary.Items))
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc := newCartService(t)
	err := svc.UpdateQuantity("device-missing", "standard-1-novariant", 2)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestSummaryTotals(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-totals"

	if _, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(1),
		UnitPrice: models.NewMoneyFromInt(250),
		Quantity:  2,
	}); err != nil {
		t.Fatalf("add first item failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(2),
		UnitPrice: models.NewMoneyFromInt(100),
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}

	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalItems != 3 {
		t.Fatalf("expected 3 total items, got %d", summary.TotalItems)
	}
	if summary.TotalPrice.String() != "600.00" {
		t.Fatalf("expected total 600, got %s", summary.TotalPrice.String())
	}
}

func TestCustomItemConfigRoundTrip(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-custom"

	config := models.JSON{
		"base":    map[string]interface{}{"option_id": float64(1), "name": "Vanilla Sponge", "price": "100"},
		"message": "Happy Birthday",
	}
	item, err := svc.AddItem(AddCartItemInput{
		DeviceID:      deviceID,
		Kind:          constants.CartItemKindCustom,
		UnitPrice:     models.NewMoneyFromInt(680),
		Quantity:      1,
		CustomConfig:  config,
		MessageOnCake: "Happy Birthday",
	})
	if err != nil {
		t.Fatalf("add custom item failed: %v", err)
	}
	if item.LineID != "custom-custom-novariant" {
		t.Fatalf("unexpected custom line id: %q", item.LineID)
	}

	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected single custom line, got %d", len(summary.Items))
	}
	loaded := summary.Items[0]
	if loaded.MessageOnCake != "Happy Birthday" {
		t.Fatalf("unexpected message: %q", loaded.MessageOnCake)
	}
	base, ok := loaded.CustomConfig["base"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected base selection in config, got %#v", loaded.CustomConfig)
	}
	if base["name"] != "Vanilla Sponge" {
		t.Fatalf("unexpected base name: %v", base["name"])
	}
}

func TestClearCart(t *testing.T) {
	svc := newCartService(t)
	deviceID := "device-clear"

	if _, err := svc.AddItem(AddCartItemInput{
		DeviceID:  deviceID,
		Kind:      constants.CartItemKindStandard,
		ProductID: uintPtr(3),
		UnitPrice: models.NewMoneyFromInt(50),
		Quantity:  4,
	}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.Clear(deviceID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	summary, err := svc.Summary(deviceID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(summary.Items))
	}
}
