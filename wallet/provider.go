package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Backend combines the contract call surface with receipt lookups. Both are
// needed by the contract access layer: reads go through the caller side,
// writes additionally await their receipt.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Provider abstracts one installed wallet. It is the sole channel for account
// authorization, signing and account/chain notifications; the session manager
// never talks to the chain through anything else.
//
// The first address in any returned account list is the provider's notion of
// the currently active account.
type Provider interface {
	// ID identifies the wallet ("metamask", "keyfile", ...).
	ID() string

	// RequestAccounts asks the provider for account authorization. It may
	// prompt the user and fails with a user-rejection error when declined.
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// Accounts returns the already-authorized accounts without prompting.
	// An empty list simply means nothing is authorized yet.
	Accounts(ctx context.Context) ([]common.Address, error)

	// ChainID returns the numeric identifier of the connected network.
	ChainID(ctx context.Context) (*big.Int, error)

	// Signer derives fresh transact options bound to the active account.
	// Callers must not cache the result across account switches.
	Signer(ctx context.Context) (*bind.TransactOpts, error)

	// Backend returns the RPC backend contract calls go through.
	Backend() Backend

	// OnAccountsChanged registers fn for account-list notifications,
	// replacing any previously registered callback.
	OnAccountsChanged(fn func(accounts []common.Address))

	// OnChainChanged registers fn for network-switch notifications,
	// replacing any previously registered callback.
	OnChainChanged(fn func(chainID *big.Int))
}

// Disconnector is implemented by providers that support an explicit
// provider-level disconnect. The session manager feature-detects it and
// treats failures as best-effort.
type Disconnector interface {
	Disconnect(ctx context.Context) error
}

// ListenerRemover is implemented by providers that can drop their registered
// callbacks. Feature-detected, like Disconnector.
type ListenerRemover interface {
	RemoveAllListeners()
}
