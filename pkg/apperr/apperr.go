// Package apperr は、SDK やトランスポート由来の生エラーを
// 利用者向けの小さな分類体系へ写像します。分類済みエラーは必ず
// 対処ヒントを含む人間可読メッセージを持ちます。
package apperr

import (
	"errors"
	"fmt"
)

// Kind はエラー分類です。
type Kind string

const (
	KindMissingCredential  Kind = "missing_credential"
	KindServiceUnavailable Kind = "service_unavailable"
	KindInvalidCredential  Kind = "invalid_credential"
	KindSafetyRejected     Kind = "safety_rejected"
	KindRateLimited        Kind = "rate_limited"
	KindBillingRequired    Kind = "billing_required"
	KindAllModelsExhausted Kind = "all_models_exhausted"
	KindDecodeError        Kind = "decode_error"
	KindCanvasError        Kind = "canvas_error"
	KindMissingResult      Kind = "missing_result"
	KindDownloadFailed     Kind = "download_failed"
	KindUnknown            Kind = "unknown"
)

// Error は分類済みエラーです。Message は UI にそのまま出せる文面です。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New は分類とメッセージを指定してエラーを作ります。
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Newf はフォーマット付きの New です。
func Newf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf は err が分類済みならその Kind を、そうでなければ KindUnknown を返します。
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
