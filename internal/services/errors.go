package services

import "errors"

var (
	// ErrListNotFound covers both non-existence and zero access; callers
	// must not be able to tell the two apart.
	ErrListNotFound  = errors.New("shopping list not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrShareNotFound = errors.New("share not found")

	ErrSelfShare     = errors.New("cannot share list with yourself")
	ErrAlreadyShared = errors.New("list is already shared with this user")

	ErrInvalidInitData = errors.New("invalid telegram init data")
	ErrExpiredInitData = errors.New("telegram init data expired")
)
