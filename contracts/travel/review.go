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

// SpotInfo is the on-chain static record of one scenic spot. AverageRating is
// the raw x10 representation; Tags is a comma-separated string.
type SpotInfo struct {
	ScenicId      *big.Int
	Name          string
	Location      string
	Description   string
	Tags          string
	ReviewCount   *big.Int
	AverageRating *big.Int
	Active        bool
}

// SummaryInfo is one on-chain AI summary record. Content is an opaque string
// that may embed structured JSON.
type SummaryInfo struct {
	ScenicId        *big.Int
	Content         string
	ReviewIds       []*big.Int
	Timestamp       *big.Int
	LastReviewIndex *big.Int
	Version         *big.Int
	TxHash          [32]byte
}

// ReviewInfo is one review as returned by getHistoricalReviews. Rating is the
// raw x2 representation.
type ReviewInfo struct {
	User         common.Address
	ScenicId     *big.Int
	Content      string
	Rating       *big.Int
	Status       uint8
	Rewarded     bool
	RewardAmount *big.Int
	Timestamp    *big.Int
	Version      *big.Int
	TxHash       [32]byte
}

// UserReviewInfo is one review as returned by getUserReviews. The deployed
// interface declares status as uint256 on this method, unlike
// getHistoricalReviews; the width difference is reproduced here.
type UserReviewInfo struct {
	User         common.Address
	ScenicId     *big.Int
	Content      string
	Rating       *big.Int
	Status       *big.Int
	Rewarded     bool
	RewardAmount *big.Int
	Timestamp    *big.Int
	Version      *big.Int
	TxHash       [32]byte
}

// ScenicReviewSystem is a high-level wrapper around the deployed
// ScenicReviewSystem contract.
type ScenicReviewSystem struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	transactOpts *bind.TransactOpts
}

// NewScenicReviewSystem binds to an already-deployed ScenicReviewSystem
// contract.
func NewScenicReviewSystem(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*ScenicReviewSystem, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.ScenicReviewSystemABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &ScenicReviewSystem{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		transactOpts: opts,
	}, nil
}

// Address returns the deployed contract address.
func (r *ScenicReviewSystem) Address() common.Address { return r.address }

// GetScenicSpot reads the static spot data and its latest AI summary in one
// round trip.
func (r *ScenicReviewSystem) GetScenicSpot(ctx context.Context, scenicId *big.Int) (SpotInfo, SummaryInfo, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getScenicSpot", scenicId); err != nil {
		return SpotInfo{}, SummaryInfo{}, err
	}
	spot := *abi.ConvertType(out[0], new(SpotInfo)).(*SpotInfo)
	summary := *abi.ConvertType(out[1], new(SummaryInfo)).(*SummaryInfo)
	return spot, summary, nil
}

// GetScenicSpotList returns the ids of all listed spots.
func (r *ScenicReviewSystem) GetScenicSpotList(ctx context.Context) ([]*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getScenicSpotList"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int), nil
}

// GetHistoricalSummaries returns every recorded summary for a spot.
func (r *ScenicReviewSystem) GetHistoricalSummaries(ctx context.Context, scenicId *big.Int) ([]SummaryInfo, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getHistoricalSummaries", scenicId); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]SummaryInfo)).(*[]SummaryInfo), nil
}

// GetHistoricalReviews returns every review recorded for a spot.
func (r *ScenicReviewSystem) GetHistoricalReviews(ctx context.Context, scenicId *big.Int) ([]ReviewInfo, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getHistoricalReviews", scenicId); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]ReviewInfo)).(*[]ReviewInfo), nil
}

// GetHistoricalReviewsCount returns the number of reviews for a spot.
func (r *ScenicReviewSystem) GetHistoricalReviewsCount(ctx context.Context, scenicId *big.Int) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getHistoricalReviewsCount", scenicId); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetUserReviews returns every review submitted by a user.
func (r *ScenicReviewSystem) GetUserReviews(ctx context.Context, user common.Address) ([]UserReviewInfo, error) {
	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserReviews", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]UserReviewInfo)).(*[]UserReviewInfo), nil
}

// UserSubmitReview submits a review. Rating range is not validated here; the
// contract is authoritative.
func (r *ScenicReviewSystem) UserSubmitReview(scenicId *big.Int, content string, rating *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(r.transactOpts, "userSubmitReview", scenicId, content, rating)
}
