package planner

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedSlotCount = errors.New("unsupported meals per day")
	ErrUnknownSlot          = errors.New("unknown meal slot")
	ErrUnknownGoal          = errors.New("unknown goal type")
	ErrInvalidTargets       = errors.New("invalid daily targets")
)

// ConfigError 呼叫端的請求本身不合法，生成必須在建立任何一天前中止
type ConfigError struct {
	Err    error
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return "configuration error: " + e.Err.Error()
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(sentinel error, format string, args ...interface{}) error {
	return &ConfigError{Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}

// IsConfigError 檢查錯誤鏈中是否有 ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
