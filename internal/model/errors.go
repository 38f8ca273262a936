package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// Share lookups preserve a three-way distinction so callers can show
	// the exact reason a link stopped working.
	ErrShareNotFound = errors.New("分享不存在")
	ErrShareDisabled = errors.New("分享已被停用")
	ErrShareExpired  = errors.New("分享链接已过期")
)
