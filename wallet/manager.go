// Package wallet owns the lifecycle of the connection to a wallet provider:
// connect, silent reconnect, verify, disconnect. It maintains exactly one
// authoritative session per process, keeps it synchronized with
// provider-emitted events and broadcasts lifecycle notifications to
// subscribers.
package wallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// State is the session manager's connection state.
type State uint8

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateVerifying
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateVerifying:
		return "verifying"
	default:
		return "unknown"
	}
}

// Session is the single source of truth for who the user is, over which
// chain. The manager owns the one live instance and mutates it in place on
// account switches, so every holder of a snapshot must re-read through the
// manager rather than caching.
type Session struct {
	ProviderID string
	Address    common.Address
	ChainID    *big.Int
	Network    string
	Connected  bool
}

// ShortAddress returns the abbreviated display form (0x1234...5678).
func (s Session) ShortAddress() string {
	if !s.Connected {
		return ""
	}
	hex := s.Address.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}

// Manager maintains the authoritative session. All session mutation happens
// here; the contract access layer only reads through the accessors.
type Manager struct {
	providers map[string]Provider
	store     Store
	network   string
	log       log.Logger
	subs      *subscribers

	mu      sync.RWMutex
	state   State
	session *Session // single shared instance, mutated in place
	active  Provider
}

// NewManager creates a session manager over the given providers. network is
// the logical network tag persisted alongside the address.
func NewManager(store Store, network string, providers ...Provider) *Manager {
	logger := log.New("component", "wallet")
	m := &Manager{
		providers: make(map[string]Provider, len(providers)),
		store:     store,
		network:   network,
		log:       logger,
		subs:      newSubscribers(logger),
		session:   &Session{},
	}
	for _, p := range providers {
		m.providers[p.ID()] = p
	}
	return m
}

// Subscribe registers fn for session lifecycle events and returns its
// removal function. Delivery is best-effort and isolated per listener.
func (m *Manager) Subscribe(fn func(Event)) (remove func()) {
	return m.subs.add(fn)
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.session
}

// Connected reports whether a session is active.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Connected
}

// Address returns the active account, if any.
func (m *Manager) Address() (common.Address, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Address, m.session.Connected
}

// Signer derives fresh transact options from the active provider. It is
// re-derived on every call so an account switch is honored by the next call.
func (m *Manager) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	m.mu.RLock()
	provider, connected := m.active, m.session.Connected
	m.mu.RUnlock()
	if provider == nil || !connected {
		return nil, ErrNoActiveSession
	}
	return provider.Signer(ctx)
}

// Backend returns the RPC backend of the active provider.
func (m *Manager) Backend() (Backend, error) {
	m.mu.RLock()
	provider, connected := m.active, m.session.Connected
	m.mu.RUnlock()
	if provider == nil || !connected {
		return nil, ErrNoActiveSession
	}
	return provider.Backend(), nil
}

// Connect establishes a session with the given provider, prompting the user
// for authorization if needed. User rejection maps to
// ErrAuthorizationRejected so callers can offer a retry.
func (m *Manager) Connect(ctx context.Context, providerID string) (Session, error) {
	m.mu.Lock()
	provider, ok := m.providers[providerID]
	if !ok {
		m.mu.Unlock()
		return Session{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, providerID)
	}
	m.state = StateConnecting
	m.mu.Unlock()

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		m.reset(true)
		if IsUserRejection(err) {
			err = fmt.Errorf("%w: %v", ErrAuthorizationRejected, err)
			m.log.Warn("Authorization rejected by user", "provider", providerID)
			m.subs.dispatch(Event{Kind: EventAuthorizationRejected, Err: err})
			return Session{}, err
		}
		m.log.Error("Authorization request failed", "provider", providerID, "err", err)
		return Session{}, err
	}
	if len(accounts) == 0 {
		m.reset(true)
		return Session{}, ErrNoAuthorizedAccount
	}
	return m.establish(ctx, provider, accounts[0])
}

// AutoConnect silently restores a session by querying already-authorized
// accounts without prompting. A provider with nothing authorized yields
// (false, nil): the "not yet connected" case is not an error.
func (m *Manager) AutoConnect(ctx context.Context, providerID string) (bool, error) {
	m.mu.Lock()
	provider, ok := m.providers[providerID]
	if !ok {
		m.mu.Unlock()
		m.log.Warn("Auto-connect skipped, provider not installed", "provider", providerID)
		return false, nil
	}
	m.state = StateConnecting
	m.mu.Unlock()

	accounts, err := provider.Accounts(ctx)
	if err != nil {
		m.reset(false)
		return false, err
	}
	if len(accounts) == 0 {
		m.log.Debug("No authorized account for silent reconnect", "provider", providerID)
		m.reset(false)
		return false, nil
	}
	if _, err := m.establish(ctx, provider, accounts[0]); err != nil {
		return false, err
	}
	return true, nil
}

// Restore attempts a silent reconnect from the persisted record, if any.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	rec, ok := m.store.Load()
	if !ok {
		return false, nil
	}
	return m.AutoConnect(ctx, rec.ID)
}

// Verify re-checks that the provider still reports an authorized account.
// On an empty list or a failed query the session is torn down and the
// persisted record cleared. Used defensively before trusting a restored
// session.
func (m *Manager) Verify(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if m.state != StateConnected || m.active == nil {
		m.mu.Unlock()
		return false, nil
	}
	provider := m.active
	m.state = StateVerifying
	m.mu.Unlock()

	accounts, err := provider.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		if err != nil {
			m.log.Warn("Session verification failed", "provider", provider.ID(), "err", err)
		}
		m.Disconnect(ctx)
		return false, nil
	}

	m.mu.Lock()
	m.state = StateConnected
	m.mu.Unlock()
	return true, nil
}

// Disconnect tears the session down. It never fails from the caller's
// perspective: a provider-level disconnect error is logged, local cleanup
// still runs and the disconnected event always fires.
func (m *Manager) Disconnect(ctx context.Context) {
	m.mu.RLock()
	provider := m.active
	m.mu.RUnlock()

	if provider != nil {
		if d, ok := provider.(Disconnector); ok {
			if err := d.Disconnect(ctx); err != nil {
				m.log.Warn("Provider disconnect failed", "provider", provider.ID(), "err", err)
			}
		}
		if r, ok := provider.(ListenerRemover); ok {
			r.RemoveAllListeners()
		}
	}
	m.reset(true)
	m.log.Info("Wallet disconnected")
	m.subs.dispatch(Event{Kind: EventDisconnected})
}

// establish finishes a connect or silent reconnect: it derives a signer,
// cross-checks it against the provider's active account, records the chain,
// persists the session record and notifies subscribers.
func (m *Manager) establish(ctx context.Context, provider Provider, account common.Address) (Session, error) {
	signer, err := provider.Signer(ctx)
	if err != nil {
		m.reset(true)
		return Session{}, err
	}
	if signer.From != account {
		m.reset(true)
		return Session{}, fmt.Errorf("wallet: signer %s does not match active account %s",
			signer.From.Hex(), account.Hex())
	}
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		m.reset(true)
		return Session{}, err
	}

	m.mu.Lock()
	m.session.ProviderID = provider.ID()
	m.session.Address = account
	m.session.ChainID = chainID
	m.session.Network = m.network
	m.session.Connected = true
	m.state = StateConnected
	m.active = provider
	snapshot := *m.session
	m.mu.Unlock()

	provider.OnAccountsChanged(m.handleAccountsChanged)
	provider.OnChainChanged(m.handleChainChanged)

	m.persist(snapshot)
	m.log.Info("Wallet connected",
		"provider", snapshot.ProviderID, "address", snapshot.Address.Hex(), "chain", chainID)
	m.subs.dispatch(Event{Kind: EventConnected, Session: snapshot})
	return snapshot, nil
}

// handleAccountsChanged normalizes the provider's account notifications.
// An empty list is revocation, not an error; a new first account mutates the
// session in place so every holder observes the change.
func (m *Manager) handleAccountsChanged(accounts []common.Address) {
	if len(accounts) == 0 {
		m.mu.RLock()
		connected := m.session.Connected
		m.mu.RUnlock()
		if !connected {
			return
		}
		m.log.Info("All account authorizations revoked")
		m.Disconnect(context.Background())
		return
	}
	next := accounts[0]

	m.mu.Lock()
	if !m.session.Connected || m.session.Address == next {
		m.mu.Unlock()
		return
	}
	m.session.Address = next
	snapshot := *m.session
	m.mu.Unlock()

	m.persist(snapshot)
	m.log.Info("Active account switched", "address", next.Hex())
	m.subs.dispatch(Event{Kind: EventAccountSwitched, Address: next})
}

// handleChainChanged re-runs initialization against the new chain.
func (m *Manager) handleChainChanged(chainID *big.Int) {
	m.mu.Lock()
	provider, connected := m.active, m.session.Connected
	if provider == nil || !connected {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.mu.Unlock()

	m.log.Info("Chain switched", "chain", chainID)
	m.subs.dispatch(Event{Kind: EventChainChanged, ChainID: chainID})

	ctx := context.Background()
	accounts, err := provider.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		m.log.Warn("Re-initialization after chain switch failed", "err", err)
		m.Disconnect(ctx)
		return
	}
	if _, err := m.establish(ctx, provider, accounts[0]); err != nil {
		m.log.Warn("Re-initialization after chain switch failed", "err", err)
		m.subs.dispatch(Event{Kind: EventDisconnected})
	}
}

// reset returns the session to the disconnected sentinel, mutating the shared
// instance in place. clearStore additionally removes the persisted record.
func (m *Manager) reset(clearStore bool) {
	m.mu.Lock()
	m.session.ProviderID = ""
	m.session.Address = common.Address{}
	m.session.ChainID = nil
	m.session.Network = ""
	m.session.Connected = false
	m.state = StateDisconnected
	m.active = nil
	m.mu.Unlock()

	if clearStore {
		if err := m.store.Clear(); err != nil {
			m.log.Warn("Failed to clear session record", "err", err)
		}
	}
}

func (m *Manager) persist(s Session) {
	rec := Record{
		ID:          s.ProviderID,
		Address:     s.Address.Hex(),
		Network:     s.Network,
		NetworkType: s.Network,
	}
	if err := m.store.Save(rec); err != nil {
		m.log.Warn("Failed to persist session record", "err", err)
	}
}
