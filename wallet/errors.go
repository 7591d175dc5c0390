package wallet

import (
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
)

// Errors surfaced by the session manager.
var (
	// ErrProviderUnavailable is returned when the requested wallet provider
	// is not installed/registered.
	ErrProviderUnavailable = errors.New("wallet: provider not installed")

	// ErrNoAuthorizedAccount is returned when the provider has no accounts
	// to offer after an authorization prompt.
	ErrNoAuthorizedAccount = errors.New("wallet: provider returned no authorized accounts")

	// ErrAuthorizationRejected is returned when the user declines the
	// provider's permission prompt. Callers can offer a retry instead of an
	// error banner.
	ErrAuthorizationRejected = errors.New("wallet: user rejected the authorization request")

	// ErrNoActiveSession is returned by signer/backend accessors when no
	// wallet is connected.
	ErrNoActiveSession = errors.New("wallet: no active session")
)

// codeUserRejected is the EIP-1193 userRejectedRequest error code.
const codeUserRejected = 4001

// IsUserRejection reports whether err represents the user declining the
// provider's permission prompt.
func IsUserRejection(err error) bool {
	if errors.Is(err, ErrAuthorizationRejected) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode() == codeUserRejected
	}
	return false
}
