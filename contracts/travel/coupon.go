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

// CouponInfo is one coupon definition. Price is a fixed-point TRT amount.
type CouponInfo struct {
	CouponId     *big.Int
	Name         string
	Description  string
	Tag          string
	Price        *big.Int
	MaxSupply    *big.Int
	ValidityDays *big.Int
	SoldCount    *big.Int
	Active       bool
	NftName      string
}

// UserCouponInfo is one coupon instance owned by a user.
type UserCouponInfo struct {
	CouponId     *big.Int
	CouponCode   string
	Name         string
	Description  string
	Tag          string
	Price        *big.Int
	ValidityDays *big.Int
	PurchaseDate *big.Int
	ExpiryDate   *big.Int
	Status       uint8
}

// CouponSystem is a high-level wrapper around the deployed CouponSystem
// contract.
type CouponSystem struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewCouponSystem binds to an already-deployed CouponSystem contract.
func NewCouponSystem(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*CouponSystem, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.CouponSystemABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &CouponSystem{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		transactOpts: opts,
	}, nil
}

// Address returns the deployed contract address.
func (c *CouponSystem) Address() common.Address { return c.address }

// GetAllCoupons returns every coupon definition.
func (c *CouponSystem) GetAllCoupons(ctx context.Context) ([]CouponInfo, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAllCoupons"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]CouponInfo)).(*[]CouponInfo), nil
}

// GetUserActiveCoupons returns the coupon instances a user currently holds.
func (c *CouponSystem) GetUserActiveCoupons(ctx context.Context, user common.Address) ([]UserCouponInfo, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserActiveCoupons", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]UserCouponInfo)).(*[]UserCouponInfo), nil
}

// PurchaseCoupon buys one instance of a coupon. The caller must have approved
// the coupon contract for at least the coupon price beforehand.
func (c *CouponSystem) PurchaseCoupon(couponId *big.Int) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "purchaseCoupon", couponId)
}

// VerifyCoupon redeems a coupon by its code.
func (c *CouponSystem) VerifyCoupon(couponCode string) (*types.Transaction, error) {
	return c.contract.Transact(c.transactOpts, "verifyCoupon", couponCode)
}
