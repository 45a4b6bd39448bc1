package common

import (
	"github.com/pkg/errors"
)

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrNotInitialized          = errors.New("not initialized")
	ErrAlreadyInitialized      = errors.New("already initialized")
	ErrIntervalNotElapsed      = errors.New("interval not elapsed")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrInsufficientPoolBalance = errors.New("insufficient pool balance")
	ErrInsufficientDeposit     = errors.New("insufficient deposit")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrArithmeticOverflow      = errors.New("arithmetic overflow")
	ErrNoPendingTransfer       = errors.New("no pending transfer")
	ErrAccountNotRegistered    = errors.New("account not registered")

	ErrInvalidPool = errors.Wrap(ErrInvalidArgument, "invalid pool")
)
