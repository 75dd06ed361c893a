package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsBusinessRule(t *testing.T) {
	assert.True(t, IsBusinessRule(ErrInsufficientBalance))
	assert.True(t, IsBusinessRule(errors.Wrap(ErrAlreadyCheckedIn, "checkin")))
	assert.True(t, IsBusinessRule(ErrNotPlotOwner))
	assert.False(t, IsBusinessRule(ErrValidationFailed))
	assert.False(t, IsBusinessRule(ErrItemNotFound))
	assert.False(t, IsBusinessRule(errors.New("boom")))
	assert.False(t, IsBusinessRule(nil))
}

func TestBaseError_WithDetailsKeepsCode(t *testing.T) {
	err := ErrValidationFailed.WithDetails("title is required")

	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode())
	assert.Equal(t, "title is required", err.Details())
	assert.Equal(t, ErrValidationFailed.Message(), err.Message())
}

func TestDatabaseExecuteError(t *testing.T) {
	err := NewDatabaseExecuteError(errors.New("connection reset"), "list plots")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "list plots", err.Details())
}

func TestBaseError_IsMatchesDetailedCopy(t *testing.T) {
	err := errors.Wrap(ErrPasswordStrength.WithDetails("at least 8 characters"), "register")

	assert.True(t, errors.Is(err, ErrPasswordStrength))
	assert.False(t, errors.Is(err, ErrPasswordMismatch))
	assert.False(t, errors.Is(ErrInvalidAmount, ErrValidationFailed))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: ErrInvalidAmount, want: KindValidation},
		{err: errors.Wrap(ErrNodeNotFound, "detail"), want: KindNotFound},
		{err: ErrRefreshTokenInvalid.WrapMessage("replayed"), want: KindAuth},
		{err: ErrPlotNotForSale.WithDetails("listing withdrawn"), want: KindRule},
		{err: NewDatabaseExecuteError(errors.New("timeout"), "debit"), want: KindInternal},
		{err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), tt.err.Error())
	}
}

func TestBaseError_ErrorIncludesDetails(t *testing.T) {
	assert.Equal(t, "餘額不足", ErrInsufficientBalance.Error())
	assert.Equal(t, "上傳的檔案無效: too large", ErrMediaInvalid.WithDetails("too large").Error())
	assert.Empty(t, ErrMediaInvalid.Details())
}
