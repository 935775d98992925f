package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Error taxonomy (spec.md §7), plus ErrUnauthorized and ErrNoValidators. Each
// kind is registered once under ModuleName so every keeper method returns one
// of these nine sentinels (optionally
// wrapped with errorsmod.Wrapf for context), never an ad-hoc error.
var (
	ErrPreconditionViolated = errorsmod.Register(ModuleName, 2, "precondition violated")
	ErrInvalidAmount        = errorsmod.Register(ModuleName, 3, "invalid amount")
	ErrUnderflow            = errorsmod.Register(ModuleName, 4, "underflow")
	ErrNotFound             = errorsmod.Register(ModuleName, 5, "not found")
	ErrInsufficientFunds    = errorsmod.Register(ModuleName, 6, "insufficient funds")
	ErrCapacityExceeded     = errorsmod.Register(ModuleName, 7, "capacity exceeded")
	ErrHostInterface        = errorsmod.Register(ModuleName, 8, "host interface error")
	ErrUnauthorized         = errorsmod.Register(ModuleName, 9, "unauthorized")
	ErrNoValidators         = errorsmod.Register(ModuleName, 10, "no validators")
)
