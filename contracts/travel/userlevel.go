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

// LevelInfo is the on-chain level record of one user.
type LevelInfo struct {
	Level       *big.Int
	LastUpgrade *big.Int
}

// LevelRule describes the cost and reward of one level.
type LevelRule struct {
	RequiredToken *big.Int
	ReviewReward  *big.Int
}

// UserLevel is a high-level wrapper around the deployed UserLevel contract.
type UserLevel struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewUserLevel binds to an already-deployed UserLevel contract.
func NewUserLevel(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*UserLevel, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.UserLevelABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &UserLevel{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		transactOpts: opts,
	}, nil
}

// Address returns the deployed contract address.
func (u *UserLevel) Address() common.Address { return u.address }

// GetUserLevelInfo returns a user's level and last-upgrade timestamp.
func (u *UserLevel) GetUserLevelInfo(ctx context.Context, user common.Address) (LevelInfo, error) {
	var out []interface{}
	if err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserLevelInfo", user); err != nil {
		return LevelInfo{}, err
	}
	return *abi.ConvertType(out[0], new(LevelInfo)).(*LevelInfo), nil
}

// GetUserLevel returns a user's current level.
func (u *UserLevel) GetUserLevel(ctx context.Context, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserLevel", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetUserReviewReward returns the fixed-point reward a user earns per
// accepted review.
func (u *UserLevel) GetUserReviewReward(ctx context.Context, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserReviewReward", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// LevelRules returns the rule for one level.
func (u *UserLevel) LevelRules(ctx context.Context, level *big.Int) (LevelRule, error) {
	var out []interface{}
	if err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "levelRules", level); err != nil {
		return LevelRule{}, err
	}
	return *abi.ConvertType(out[0], new(LevelRule)).(*LevelRule), nil
}

// MaxLevel returns the highest reachable level.
func (u *UserLevel) MaxLevel(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	if err := u.contract.Call(&bind.CallOpts{Context: ctx}, &out, "maxLevel"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Upgrade advances the signing account to the next level. The caller must
// have approved the level contract for the required token amount beforehand.
func (u *UserLevel) Upgrade() (*types.Transaction, error) {
	return u.contract.Transact(u.transactOpts, "upgrade")
}
