package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	addrA = common.HexToAddress("0x0000000000000000000000000000000000001111")
	addrB = common.HexToAddress("0x0000000000000000000000000000000000002222")
)

// rpcErr mimics a provider JSON-RPC error with an EIP-1193 code.
type rpcErr struct{ code int }

func (e rpcErr) Error() string  { return "provider error" }
func (e rpcErr) ErrorCode() int { return e.code }

type memStore struct {
	rec   Record
	ok    bool
	saves int
}

func (s *memStore) Load() (Record, bool) { return s.rec, s.ok }
func (s *memStore) Save(r Record) error  { s.rec, s.ok = r, true; s.saves++; return nil }
func (s *memStore) Clear() error         { s.rec, s.ok = Record{}, false; return nil }

type fakeProvider struct {
	id          string
	accounts    []common.Address
	signerFrom  common.Address
	chainID     *big.Int
	requestErr  error
	accountsErr error
	chainIDErr  error

	onAccounts func([]common.Address)
	onChain    func(*big.Int)

	disconnectErr error
	disconnects   int
	removals      int
}

func newFakeProvider(accounts ...common.Address) *fakeProvider {
	p := &fakeProvider{id: "fake", accounts: accounts, chainID: big.NewInt(1)}
	if len(accounts) > 0 {
		p.signerFrom = accounts[0]
	}
	return p
}

func (p *fakeProvider) ID() string { return p.id }

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if p.requestErr != nil {
		return nil, p.requestErr
	}
	return p.accounts, nil
}

func (p *fakeProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	if p.accountsErr != nil {
		return nil, p.accountsErr
	}
	return p.accounts, nil
}

func (p *fakeProvider) ChainID(ctx context.Context) (*big.Int, error) {
	if p.chainIDErr != nil {
		return nil, p.chainIDErr
	}
	return p.chainID, nil
}

func (p *fakeProvider) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: p.signerFrom, Context: ctx}, nil
}

func (p *fakeProvider) Backend() Backend { return nil }

func (p *fakeProvider) OnAccountsChanged(fn func([]common.Address)) { p.onAccounts = fn }
func (p *fakeProvider) OnChainChanged(fn func(*big.Int))            { p.onChain = fn }

func (p *fakeProvider) Disconnect(ctx context.Context) error {
	p.disconnects++
	return p.disconnectErr
}

func (p *fakeProvider) RemoveAllListeners() { p.removals++ }

func collect(m *Manager) *[]Event {
	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })
	return &events
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestConnect(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{}
	m := NewManager(store, "ETH", provider)
	events := collect(m)

	session, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	require.True(t, session.Connected)
	require.Equal(t, addrA, session.Address)
	require.Equal(t, "ETH", session.Network)
	require.Equal(t, StateConnected, m.State())

	require.Equal(t, []EventKind{EventConnected}, kinds(*events))
	require.True(t, store.ok)
	require.Equal(t, addrA.Hex(), store.rec.Address)
	require.Equal(t, "fake", store.rec.ID)
}

func TestConnectUnknownProvider(t *testing.T) {
	m := NewManager(&memStore{}, "ETH")
	_, err := m.Connect(context.Background(), "metamask")
	require.ErrorIs(t, err, ErrProviderUnavailable)
	require.Equal(t, StateDisconnected, m.State())
}

func TestConnectRejected(t *testing.T) {
	provider := newFakeProvider(addrA)
	provider.requestErr = rpcErr{code: 4001}
	m := NewManager(&memStore{}, "ETH", provider)
	events := collect(m)

	_, err := m.Connect(context.Background(), "fake")
	require.ErrorIs(t, err, ErrAuthorizationRejected)
	require.Equal(t, StateDisconnected, m.State())
	require.Equal(t, []EventKind{EventAuthorizationRejected}, kinds(*events))
	require.ErrorIs(t, (*events)[0].Err, ErrAuthorizationRejected)
}

func TestConnectRequestFailed(t *testing.T) {
	provider := newFakeProvider(addrA)
	provider.requestErr = errors.New("network down")
	m := NewManager(&memStore{}, "ETH", provider)
	events := collect(m)

	_, err := m.Connect(context.Background(), "fake")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAuthorizationRejected)
	require.Empty(t, *events)
}

func TestConnectNoAccounts(t *testing.T) {
	m := NewManager(&memStore{}, "ETH", newFakeProvider())
	_, err := m.Connect(context.Background(), "fake")
	require.ErrorIs(t, err, ErrNoAuthorizedAccount)
}

func TestConnectSignerMismatch(t *testing.T) {
	provider := newFakeProvider(addrA)
	provider.signerFrom = addrB
	m := NewManager(&memStore{}, "ETH", provider)

	_, err := m.Connect(context.Background(), "fake")
	require.Error(t, err)
	require.Equal(t, StateDisconnected, m.State())
	require.False(t, m.Connected())
}

func TestAccountSwitchMutatesInPlace(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{}
	m := NewManager(store, "ETH", provider)

	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	provider.onAccounts([]common.Address{addrB})

	require.Equal(t, []EventKind{EventAccountSwitched}, kinds(*events))
	require.Equal(t, addrB, (*events)[0].Address)
	require.Equal(t, addrB, m.Session().Address)
	require.Equal(t, addrB.Hex(), store.rec.Address)

	// Same account again is a no-op.
	provider.onAccounts([]common.Address{addrB})
	require.Len(t, *events, 1)
}

func TestRevocationDisconnects(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{}
	m := NewManager(store, "ETH", provider)

	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	provider.onAccounts(nil)

	require.Equal(t, []EventKind{EventDisconnected}, kinds(*events))
	require.Equal(t, StateDisconnected, m.State())
	require.False(t, store.ok)
	require.Equal(t, 1, provider.removals)
}

func TestAutoConnect(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)

	ok, err := m.AutoConnect(context.Background(), "fake")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, addrA, m.Session().Address)
}

func TestAutoConnectNothingAuthorized(t *testing.T) {
	m := NewManager(&memStore{}, "ETH", newFakeProvider())
	ok, err := m.AutoConnect(context.Background(), "fake")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAutoConnectUnknownProvider(t *testing.T) {
	m := NewManager(&memStore{}, "ETH")
	ok, err := m.AutoConnect(context.Background(), "metamask")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRestore(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{rec: Record{ID: "fake", Address: addrA.Hex(), Network: "ETH", NetworkType: "ETH"}, ok: true}
	m := NewManager(store, "ETH", provider)

	ok, err := m.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, m.Connected())
}

func TestRestoreNoRecord(t *testing.T) {
	m := NewManager(&memStore{}, "ETH", newFakeProvider(addrA))
	ok, err := m.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)

	ok, err := m.Verify(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, StateConnected, m.State())
}

func TestVerifyTearsDownOnFailure(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{}
	m := NewManager(store, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)

	provider.accountsErr = errors.New("provider gone")
	ok, err := m.Verify(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, StateDisconnected, m.State())
	require.False(t, store.ok)
}

func TestVerifyWithoutSession(t *testing.T) {
	m := NewManager(&memStore{}, "ETH", newFakeProvider(addrA))
	ok, err := m.Verify(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDisconnectNeverFails(t *testing.T) {
	provider := newFakeProvider(addrA)
	provider.disconnectErr = errors.New("provider refused")
	store := &memStore{}
	m := NewManager(store, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	m.Disconnect(context.Background())

	require.Equal(t, []EventKind{EventDisconnected}, kinds(*events))
	require.Equal(t, 1, provider.disconnects)
	require.Equal(t, 1, provider.removals)
	require.False(t, m.Connected())
	require.False(t, store.ok)
}

func TestChainSwitchReinitializes(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	provider.chainID = big.NewInt(11155111)
	provider.onChain(big.NewInt(11155111))

	require.Equal(t, []EventKind{EventChainChanged, EventConnected}, kinds(*events))
	require.Equal(t, big.NewInt(11155111), m.Session().ChainID)
	require.Equal(t, StateConnected, m.State())
}

func TestChainSwitchFailureDisconnects(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	provider.accountsErr = errors.New("wrong chain")
	provider.onChain(big.NewInt(5))

	require.Equal(t, StateDisconnected, m.State())
	require.Equal(t, []EventKind{EventChainChanged, EventDisconnected}, kinds(*events))
}

func TestChainSwitchReinitFailureNotifiesDisconnect(t *testing.T) {
	provider := newFakeProvider(addrA)
	store := &memStore{}
	m := NewManager(store, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	events := collect(m)

	// Accounts still answer but the chain-id query dies mid-reinit.
	provider.chainIDErr = errors.New("chain unreachable")
	provider.onChain(big.NewInt(5))

	require.False(t, m.Connected())
	require.False(t, store.ok)
	require.Equal(t, []EventKind{EventChainChanged, EventDisconnected}, kinds(*events))
}

func TestRevocationWhileDisconnected(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)
	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	m.Disconnect(context.Background())
	events := collect(m)

	// A straggling revocation callback after teardown must stay silent.
	provider.onAccounts(nil)
	require.Empty(t, *events)
}

func TestAccessorsWithoutSession(t *testing.T) {
	m := NewManager(&memStore{}, "ETH", newFakeProvider(addrA))

	_, err := m.Signer(context.Background())
	require.ErrorIs(t, err, ErrNoActiveSession)

	_, err = m.Backend()
	require.ErrorIs(t, err, ErrNoActiveSession)

	_, ok := m.Address()
	require.False(t, ok)
}

func TestListenerPanicDoesNotSuppressOthers(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)

	m.Subscribe(func(Event) { panic("listener bug") })
	delivered := 0
	m.Subscribe(func(Event) { delivered++ })

	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	require.Equal(t, 1, delivered)
}

func TestSubscribeRemove(t *testing.T) {
	provider := newFakeProvider(addrA)
	m := NewManager(&memStore{}, "ETH", provider)

	calls := 0
	remove := m.Subscribe(func(Event) { calls++ })
	remove()

	_, err := m.Connect(context.Background(), "fake")
	require.NoError(t, err)
	require.Zero(t, calls)
}

func TestShortAddress(t *testing.T) {
	s := Session{Address: addrA, Connected: true}
	require.Equal(t, "0x0000...1111", s.ShortAddress())
	require.Equal(t, "", Session{}.ShortAddress())
}
