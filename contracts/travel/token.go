// Package travel provides high-level Go bindings for the four deployed
// TravelTrust contracts: the TRT token, the scenic review system, the coupon
// system and the user level system.
//
// A binding is a short-lived handle over {address, interface, signer}. It is
// deliberately cheap to construct: callers rebuild one per call so a
// mid-session account switch is always honored by the next call.
package travel

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/JacenYi/TravelTrust/contracts/travel/contract"
)

// TokenTransaction is one on-chain ledger record of the TRT token.
type TokenTransaction struct {
	Id          *big.Int
	From        common.Address
	To          common.Address
	Amount      *big.Int
	Action      string
	Description string
	Timestamp   *big.Int
}

// TravelToken is a high-level wrapper around the deployed TRT token contract.
type TravelToken struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewTravelToken binds to an already-deployed TravelToken contract.
func NewTravelToken(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*TravelToken, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.TravelTokenABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &TravelToken{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		transactOpts: opts,
	}, nil
}

// Address returns the deployed contract address.
func (t *TravelToken) Address() common.Address { return t.address }

// BalanceOf returns the fixed-point TRT balance of an account.
func (t *TravelToken) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetUserTransactions returns the ledger records in [start, end).
func (t *TravelToken) GetUserTransactions(ctx context.Context, user common.Address, start, end *big.Int) ([]TokenTransaction, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserTransactions", user, start, end); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]TokenTransaction)).(*[]TokenTransaction), nil
}

// GetUserTransactionCount returns how many ledger records a user has.
func (t *TravelToken) GetUserTransactionCount(ctx context.Context, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserTransactionCount", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Approve grants a spender the right to transfer up to value fixed-point TRT
// from the signing account.
func (t *TravelToken) Approve(spender common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(t.transactOpts, "approve", spender, value)
}
