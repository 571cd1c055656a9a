package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
)

func TestValidAmount(t *testing.T) {
	cases := map[string]bool{
		"0":                      true,
		"0e100":                  true,
		"-12.50":                 true,
		"0.1234":                 true,
		"0.12340":                true,
		"9999999999999999.9999":  true,
		"-9999999999999999.9999": true,
		"1e15":                   true,
		"0.12345":                false,
		"1e-5":                   false,
		"10000000000000000":      false,
		"-10000000000000000":     false,
		"1e16":                   false,
		"1e50000000":             false,
		"1e-50000000":            false,
		"-1e300000000":           false,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, models.ValidAmount(decimal.RequireFromString(in)))
		})
	}
}

// огромная экспонента отклоняется без разворачивания числа
func TestValidAmount_HugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	require.False(t, models.ValidAmount(decimal.RequireFromString("1e300000000")))
	require.Less(t, time.Since(start), time.Second)
}

func TestKind_Valid(t *testing.T) {
	require.True(t, models.KindIncome.Valid())
	require.True(t, models.KindExpense.Valid())
	require.False(t, models.Kind("transfer").Valid())
}
