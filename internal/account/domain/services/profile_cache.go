package services

import "errors"

// ErrProfileCacheMiss возвращается кэшем профилей, если запись отсутствует.
var ErrProfileCacheMiss = errors.New("profile cache miss")
