package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// KeyfileProvider is a Provider backed by a JSON-RPC endpoint and an
// encrypted JSON keyfile. It stands in for a browser-injected wallet in CLI
// and headless setups: the key's address is the one authorized account, so
// authorization never prompts and never gets rejected.
type KeyfileProvider struct {
	id      string
	client  *ethclient.Client
	key     *ecdsa.PrivateKey
	address common.Address

	mu         sync.Mutex
	onAccounts func([]common.Address)
	onChain    func(*big.Int)
}

// NewKeyfileProvider dials the RPC endpoint and decrypts the keyfile.
func NewKeyfileProvider(id, rpcURL, keyfilePath, passphrase string) (*KeyfileProvider, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("wallet: dial %s: %w", rpcURL, err)
	}
	blob, err := os.ReadFile(keyfilePath)
	if err != nil {
		return nil, fmt.Errorf("wallet: read keyfile: %w", err)
	}
	key, err := keystore.DecryptKey(blob, passphrase)
	if err != nil {
		return nil, fmt.Errorf("wallet: decrypt keyfile: %w", err)
	}
	return &KeyfileProvider{
		id:      id,
		client:  client,
		key:     key.PrivateKey,
		address: key.Address,
	}, nil
}

func (p *KeyfileProvider) ID() string { return p.id }

func (p *KeyfileProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *KeyfileProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *KeyfileProvider) ChainID(ctx context.Context) (*big.Int, error) {
	return p.client.ChainID(ctx)
}

func (p *KeyfileProvider) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(p.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

func (p *KeyfileProvider) Backend() Backend { return p.client }

func (p *KeyfileProvider) OnAccountsChanged(fn func([]common.Address)) {
	p.mu.Lock()
	p.onAccounts = fn
	p.mu.Unlock()
}

func (p *KeyfileProvider) OnChainChanged(fn func(*big.Int)) {
	p.mu.Lock()
	p.onChain = fn
	p.mu.Unlock()
}

// RemoveAllListeners drops the registered callbacks.
func (p *KeyfileProvider) RemoveAllListeners() {
	p.mu.Lock()
	p.onAccounts = nil
	p.onChain = nil
	p.mu.Unlock()
}
