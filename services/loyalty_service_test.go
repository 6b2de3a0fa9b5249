package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"villa-backend/models"
)

func rule(id uint, per100 int, multiplier, minAmount float64, active bool) models.LoyaltyRule {
	r := models.LoyaltyRule{
		PointsPer100:     per100,
		Multiplier:       multiplier,
		MinBookingAmount: minAmount,
		Active:           active,
	}
	r.ID = id
	return r
}

func TestPointsForAmountBaseRule(t *testing.T) {
	rules := []models.LoyaltyRule{rule(1, 1, 1, 0, true)}

	points, matched := PointsForAmount(rules, 9000)
	require.NotNil(t, matched)
	require.Equal(t, uint(1), matched.ID)
	require.Equal(t, 90, points)
}

func TestPointsForAmountHighestThresholdWins(t *testing.T) {
	rules := []models.LoyaltyRule{
		rule(1, 1, 1, 0, true),
		rule(2, 1, 2, 5000, true),
	}

	points, matched := PointsForAmount(rules, 9000)
	require.NotNil(t, matched)
	require.Equal(t, uint(2), matched.ID)
	require.Equal(t, 180, points)

	// Below the premium threshold the base rule applies.
	points, matched = PointsForAmount(rules, 4500)
	require.NotNil(t, matched)
	require.Equal(t, uint(1), matched.ID)
	require.Equal(t, 45, points)
}

func TestPointsForAmountIgnoresInactiveRules(t *testing.T) {
	rules := []models.LoyaltyRule{
		rule(1, 1, 1, 0, true),
		rule(2, 1, 5, 0, false),
	}

	points, matched := PointsForAmount(rules, 1000)
	require.NotNil(t, matched)
	require.Equal(t, uint(1), matched.ID)
	require.Equal(t, 10, points)
}

func TestPointsForAmountNoMatch(t *testing.T) {
	rules := []models.LoyaltyRule{rule(1, 1, 1, 10000, true)}

	points, matched := PointsForAmount(rules, 9000)
	require.Nil(t, matched)
	require.Equal(t, 0, points)
}

func TestPointsForAmountFloorsPartialHundreds(t *testing.T) {
	rules := []models.LoyaltyRule{rule(1, 1, 1, 0, true)}

	points, _ := PointsForAmount(rules, 199.99)
	require.Equal(t, 1, points)
}
