package util

import "errors"

var (
	ErrInvalidPhone        = errors.New("手机号格式不正确")
	ErrPhoneNotWhitelisted = errors.New("手机号不在白名单内")
	ErrInvalidMode         = errors.New("invalid exam mode")
	ErrInvalidTotal        = errors.New("total must be a positive integer")
	ErrSessionNotFound     = errors.New("session not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrSessionFinished     = errors.New("session already finished")
	ErrActiveSessionExists = errors.New("another active session exists")
	ErrNotSessionOwner     = errors.New("session belongs to another user")
)
