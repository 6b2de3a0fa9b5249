package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"villa-backend/models"
)

func TestComputeCouponDiscountPercent(t *testing.T) {
	coupon := &models.Coupon{Type: models.CouponTypePercent, Value: 10}
	require.Equal(t, 900.0, ComputeCouponDiscount(coupon, 9000))
}

func TestComputeCouponDiscountPercentCapped(t *testing.T) {
	coupon := &models.Coupon{Type: models.CouponTypePercent, Value: 10, MaxDiscount: 500}
	require.Equal(t, 500.0, ComputeCouponDiscount(coupon, 9000))
}

func TestComputeCouponDiscountFixed(t *testing.T) {
	coupon := &models.Coupon{Type: models.CouponTypeFixed, Value: 1500}
	require.Equal(t, 1500.0, ComputeCouponDiscount(coupon, 9000))
}

func TestComputeCouponDiscountNeverExceedsAmount(t *testing.T) {
	coupon := &models.Coupon{Type: models.CouponTypeFixed, Value: 12000}
	require.Equal(t, 9000.0, ComputeCouponDiscount(coupon, 9000))
}

func TestComputeCouponDiscountUnknownType(t *testing.T) {
	coupon := &models.Coupon{Type: "mystery", Value: 50}
	require.Equal(t, 0.0, ComputeCouponDiscount(coupon, 9000))
}

func TestComputeCouponDiscountRounding(t *testing.T) {
	coupon := &models.Coupon{Type: models.CouponTypePercent, Value: 7.5}
	// 3333 * 7.5% = 249.975 -> 249.98
	require.Equal(t, 249.98, ComputeCouponDiscount(coupon, 3333))
}
