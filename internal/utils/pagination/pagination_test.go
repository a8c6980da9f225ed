package pagination

import (
	"testing"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		limit      *int
		offset     *int
		wantLimit  int
		wantOffset int
	}{
		{name: "absent inputs use defaults", limit: nil, offset: nil, wantLimit: 100, wantOffset: 0},
		{name: "explicit values kept", limit: intPtr(25), offset: intPtr(50), wantLimit: 25, wantOffset: 50},
		{name: "explicit zero limit kept", limit: intPtr(0), offset: nil, wantLimit: 0, wantOffset: 0},
		{name: "negative limit falls back", limit: intPtr(-1), offset: nil, wantLimit: 100, wantOffset: 0},
		{name: "negative offset falls back", limit: nil, offset: intPtr(-20), wantLimit: 100, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := Normalize(tt.limit, tt.offset, DefaultLimit)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestNormalizeCustomDefault(t *testing.T) {
	limit, _ := Normalize(nil, nil, 20)
	assert.Equal(t, 20, limit)

	limit, _ = Normalize(nil, nil, 0)
	assert.Equal(t, DefaultLimit, limit, "non-positive default falls back to the package default")
}

func TestCheckCeiling(t *testing.T) {
	assert.NoError(t, CheckCeiling(MaxLimit, MaxLimit, false))
	assert.NoError(t, CheckCeiling(MaxLimit+1, MaxLimit, true), "root bypasses the ceiling")

	err := CheckCeiling(MaxLimit+1, MaxLimit, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLimitExceeded)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestCheckCeilingZeroMaxUsesDefault(t *testing.T) {
	assert.NoError(t, CheckCeiling(MaxLimit, 0, false))
	assert.Error(t, CheckCeiling(MaxLimit+1, 0, false))
}
