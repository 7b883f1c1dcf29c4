package mahjong

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalAction      = errors.New("illegal action")
	ErrMalformedInput     = errors.New("malformed input")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrRoundOver          = errors.New("round already ended")
	ErrGameOver           = errors.New("game already ended")
)

// IllegalActionError 动作不在当前合法动作集合中，状态不变，可恢复
type IllegalActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("seat %d: illegal action %s: %s", e.Seat, e.Action, e.Reason)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

// MalformedInputError 动作引用了不存在/不持有的牌，或者快照数据损坏
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// InvariantViolationError 引擎内部状态损坏，这一局必须丢弃
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Reason
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }

func newMalformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

func newInvariant(format string, args ...any) error {
	return &InvariantViolationError{Reason: fmt.Sprintf(format, args...)}
}

func newIllegal(seat int, a Action, reason string) error {
	return &IllegalActionError{Seat: seat, Action: a, Reason: reason}
}

// IsRecoverable 非法动作与格式错误可以由调用方重试或替换为默认动作
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrIllegalAction) || errors.Is(err, ErrMalformedInput)
}
