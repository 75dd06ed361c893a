// Package errors holds the user facing errors of the plaza. Each one carries the HTTP
// status, a stable business code and a message shown to residents.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind groups errors by how the web layer reports them.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	// KindRule is a refused economy action. Nothing was changed, so pages show a warning.
	KindRule
)

// AppError is an error that can be shown to the resident.
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string // optional, appended to Message on pages
}

type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

func newError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{kind: kind, httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

func (e *BaseError) Kind() Kind        { return e.kind }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WrapMessage adds internal context; the resident still sees Message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithDetails returns a copy carrying details. errors.Is still matches the original.
func (e *BaseError) WithDetails(details string) *BaseError {
	cp := *e
	cp.details = details

	return &cp
}

func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.message == t.message
}

//nolint:gochecknoglobals
var (
	ErrUserNotFound      = newError(KindNotFound, http.StatusNotFound, "USER_NOT_FOUND", "找不到該使用者")
	ErrUserAlreadyExists = newError(KindValidation, http.StatusConflict, "USER_ALREADY_EXISTS", "此使用者名稱已被註冊")

	ErrInvalidCredentials  = newError(KindAuth, http.StatusUnauthorized, "INVALID_CREDENTIALS", "使用者名稱或密碼錯誤")
	ErrUnauthorized        = newError(KindAuth, http.StatusUnauthorized, "UNAUTHORIZED", "請先登入")
	ErrRefreshTokenInvalid = newError(KindAuth, http.StatusUnauthorized, "REFRESH_TOKEN_INVALID", "無效或已過期的重新整理權杖")
	ErrPasswordHashFailed  = newError(KindInternal, http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "密碼處理錯誤")
	ErrPasswordStrength    = newError(KindValidation, http.StatusBadRequest, "PASSWORD_STRENGTH", "密碼強度不足")
	ErrPasswordMismatch    = newError(KindValidation, http.StatusBadRequest, "PASSWORD_MISMATCH", "兩次輸入的密碼不一致")

	ErrValidationFailed = newError(KindValidation, http.StatusBadRequest, "VALIDATION_FAILED", "輸入資料驗證失敗")
	ErrInvalidAmount    = newError(KindValidation, http.StatusBadRequest, "VALIDATION_FAILED", "請輸入有效的正整數金額")
	ErrMediaInvalid     = newError(KindValidation, http.StatusBadRequest, "MEDIA_INVALID", "上傳的檔案無效")

	ErrItemNotFound = newError(KindNotFound, http.StatusNotFound, "ITEM_NOT_FOUND", "找不到該商品")
	ErrPlotNotFound = newError(KindNotFound, http.StatusNotFound, "PLOT_NOT_FOUND", "找不到該地塊")
	ErrNodeNotFound = newError(KindNotFound, http.StatusNotFound, "NODE_NOT_FOUND", "找不到該節點")

	ErrInsufficientBalance = newError(KindRule, http.StatusConflict, "INSUFFICIENT_BALANCE", "餘額不足")
	ErrSelfTransfer        = newError(KindRule, http.StatusBadRequest, "SELF_TRANSFER", "不能打賞給自己")
	ErrAlreadyCheckedIn    = newError(KindRule, http.StatusConflict, "ALREADY_CHECKED_IN", "今天已經簽到過了")
	ErrPlotAlreadyOwned    = newError(KindRule, http.StatusConflict, "PLOT_ALREADY_OWNED", "這塊地已經有主人了")
	ErrPlotNotForSale      = newError(KindRule, http.StatusConflict, "PLOT_NOT_FOR_SALE", "這塊地目前沒有出售")
	ErrNotPlotOwner        = newError(KindRule, http.StatusForbidden, "NOT_PLOT_OWNER", "你不是這塊地的主人")

	ErrMethodNotAllowed = newError(KindValidation, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "不支援的請求方法")
)

// KindOf classifies err. Errors that are not an AppError are internal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// IsBusinessRule reports whether err refused an economy action without changing state.
func IsBusinessRule(err error) bool {
	return err != nil && KindOf(err) == KindRule
}

// DatabaseExecuteError hides a driver failure behind a generic message.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) Kind() Kind        { return KindInternal }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "資料庫執行失敗" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
