package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	binding "github.com/JacenYi/TravelTrust/contracts/travel"
	"github.com/JacenYi/TravelTrust/wallet"
)

// SignerSource supplies the signing identity and backend of the active wallet
// session. *wallet.Manager satisfies it.
type SignerSource interface {
	Signer(ctx context.Context) (*bind.TransactOpts, error)
	Backend() (wallet.Backend, error)
	Address() (common.Address, bool)
}

// Addresses holds the deployed addresses of the four contracts.
type Addresses struct {
	Token        common.Address
	ReviewSystem common.Address
	CouponSystem common.Address
	UserLevel    common.Address
}

// Service executes domain operations against the deployed contracts. Contract
// handles are rebuilt from the wallet on every call, so an account or chain
// switch mid-session takes effect on the next operation without any explicit
// refresh.
type Service struct {
	wallet SignerSource
	addrs  Addresses
	log    log.Logger
}

// NewService returns a Service bound to the given wallet and contract
// addresses.
func NewService(src SignerSource, addrs Addresses) *Service {
	return &Service{
		wallet: src,
		addrs:  addrs,
		log:    log.New("component", "travel"),
	}
}

func (s *Service) session(ctx context.Context) (*bind.TransactOpts, wallet.Backend, error) {
	signer, err := s.wallet.Signer(ctx)
	if err != nil {
		return nil, nil, err
	}
	backend, err := s.wallet.Backend()
	if err != nil {
		return nil, nil, err
	}
	return signer, backend, nil
}

func (s *Service) tokenContract(ctx context.Context) (*binding.TravelToken, error) {
	signer, backend, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return binding.NewTravelToken(signer, s.addrs.Token, backend)
}

func (s *Service) reviewContract(ctx context.Context) (*binding.ScenicReviewSystem, error) {
	signer, backend, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return binding.NewScenicReviewSystem(signer, s.addrs.ReviewSystem, backend)
}

func (s *Service) couponContract(ctx context.Context) (*binding.CouponSystem, error) {
	signer, backend, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return binding.NewCouponSystem(signer, s.addrs.CouponSystem, backend)
}

func (s *Service) levelContract(ctx context.Context) (*binding.UserLevel, error) {
	signer, backend, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return binding.NewUserLevel(signer, s.addrs.UserLevel, backend)
}

// fail wraps a contract failure, passing session errors through untouched so
// callers can distinguish "not connected" from "call failed".
func (s *Service) fail(op string, err error) error {
	if errors.Is(err, wallet.ErrNoActiveSession) {
		return err
	}
	s.log.Warn("Contract operation failed", "op", op, "err", err)
	return &CallError{Op: op, Err: err}
}

func (s *Service) account() (common.Address, error) {
	addr, ok := s.wallet.Address()
	if !ok {
		return common.Address{}, wallet.ErrNoActiveSession
	}
	return addr, nil
}

// waitConfirmed blocks until the transaction is mined and checks the receipt
// status.
func (s *Service) waitConfirmed(ctx context.Context, backend wallet.Backend, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// TokenBalance returns the signing account's TRT balance as a decimal string.
func (s *Service) TokenBalance(ctx context.Context) (string, error) {
	const op = "token balance"
	account, err := s.account()
	if err != nil {
		return "", err
	}
	token, err := s.tokenContract(ctx)
	if err != nil {
		return "", s.fail(op, err)
	}
	raw, err := token.BalanceOf(ctx, account)
	if err != nil {
		return "", s.fail(op, err)
	}
	return FormatToken(raw), nil
}

// UserTransactions returns the signing account's token ledger, newest-first
// as recorded. Entries without a description are bookkeeping rows and are
// dropped.
func (s *Service) UserTransactions(ctx context.Context) ([]Transaction, error) {
	const op = "user transactions"
	account, err := s.account()
	if err != nil {
		return nil, err
	}
	token, err := s.tokenContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	count, err := token.GetUserTransactionCount(ctx, account)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if count.Sign() == 0 {
		return []Transaction{}, nil
	}
	raw, err := token.GetUserTransactions(ctx, account, big.NewInt(0), count)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]Transaction, 0, len(raw))
	for _, r := range raw {
		if r.Description == "" {
			continue
		}
		out = append(out, Transaction{
			ID:          u64(r.Id),
			From:        r.From,
			To:          r.To,
			Amount:      FormatToken(r.Amount),
			Action:      normalizeAction(r.Action),
			Description: r.Description,
			Timestamp:   FormatTimestamp(r.Timestamp),
		})
	}
	return out, nil
}

// normalizeAction collapses the contract's action labels into the two the
// ledger view distinguishes. Rewards and withdrawals both move tokens toward
// the user.
func normalizeAction(action string) string {
	switch action {
	case "REWARD", "WITHDRAW":
		return "WITHDRAW"
	default:
		return "CONSUME"
	}
}

// AllCoupons returns every coupon definition in the shop.
func (s *Service) AllCoupons(ctx context.Context) ([]Coupon, error) {
	const op = "coupon list"
	coupons, err := s.couponContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	raw, err := coupons.GetAllCoupons(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]Coupon, 0, len(raw))
	for _, r := range raw {
		sold := u64(r.SoldCount)
		max := u64(r.MaxSupply)
		remaining := uint64(0)
		if max > sold {
			remaining = max - sold
		}
		out = append(out, Coupon{
			ID:           u64(r.CouponId),
			Name:         r.Name,
			Tag:          r.Tag,
			Description:  r.Description,
			Price:        FormatToken(r.Price),
			MaxSupply:    max,
			Remaining:    remaining,
			ValidityDays: u64(r.ValidityDays),
			NFTName:      r.NftName,
			Active:       r.Active,
		})
	}
	return out, nil
}

// PurchaseCoupon buys one instance of a coupon: approve the coupon contract
// for the price, wait for the approval to confirm, then purchase and wait
// again. The returned hash is the purchase transaction's.
func (s *Service) PurchaseCoupon(ctx context.Context, couponID uint64, price string) (string, error) {
	const op = "coupon purchase"
	spendLimit, err := ParseToken(price)
	if err != nil {
		return "", s.fail(op, err)
	}
	signer, backend, err := s.session(ctx)
	if err != nil {
		return "", s.fail(op, err)
	}
	token, err := binding.NewTravelToken(signer, s.addrs.Token, backend)
	if err != nil {
		return "", s.fail(op, err)
	}
	coupons, err := binding.NewCouponSystem(signer, s.addrs.CouponSystem, backend)
	if err != nil {
		return "", s.fail(op, err)
	}
	approval, err := token.Approve(s.addrs.CouponSystem, spendLimit)
	if err != nil {
		return "", s.fail(op, err)
	}
	if _, err := s.waitConfirmed(ctx, backend, approval); err != nil {
		return "", s.fail(op, err)
	}
	purchase, err := coupons.PurchaseCoupon(new(big.Int).SetUint64(couponID))
	if err != nil {
		return "", s.fail(op, err)
	}
	if _, err := s.waitConfirmed(ctx, backend, purchase); err != nil {
		return "", s.fail(op, err)
	}
	s.log.Info("Coupon purchased", "coupon", couponID, "tx", purchase.Hash())
	return purchase.Hash().Hex(), nil
}

// VerifyCoupon redeems a coupon by its code and returns the confirmation
// receipt.
func (s *Service) VerifyCoupon(ctx context.Context, code string) (*types.Receipt, error) {
	const op = "coupon verify"
	signer, backend, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	coupons, err := binding.NewCouponSystem(signer, s.addrs.CouponSystem, backend)
	if err != nil {
		return nil, s.fail(op, err)
	}
	tx, err := coupons.VerifyCoupon(code)
	if err != nil {
		return nil, s.fail(op, err)
	}
	receipt, err := s.waitConfirmed(ctx, backend, tx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.log.Info("Coupon redeemed", "tx", tx.Hash())
	return receipt, nil
}

// UserActiveCoupons returns the coupon instances the signing account holds.
// The displayed expiry extends the recorded expiry date by the coupon's
// validity window.
func (s *Service) UserActiveCoupons(ctx context.Context) ([]UserCoupon, error) {
	const op = "user coupons"
	account, err := s.account()
	if err != nil {
		return nil, err
	}
	coupons, err := s.couponContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	raw, err := coupons.GetUserActiveCoupons(ctx, account)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]UserCoupon, 0, len(raw))
	for _, r := range raw {
		expiry := new(big.Int).Set(r.ExpiryDate)
		expiry.Add(expiry, new(big.Int).Mul(r.ValidityDays, big.NewInt(86400)))
		out = append(out, UserCoupon{
			ID:           u64(r.CouponId),
			Code:         r.CouponCode,
			Name:         r.Name,
			Description:  r.Description,
			Tag:          r.Tag,
			Price:        FormatToken(r.Price),
			ValidityDays: u64(r.ValidityDays),
			PurchaseDate: FormatTimestamp(r.PurchaseDate),
			ExpiryDate:   FormatTimestamp(expiry),
			Status:       couponStatus(r.Status),
		})
	}
	return out, nil
}

func couponStatus(raw uint8) CouponStatus {
	switch raw {
	case 1:
		return CouponUsed
	case 2:
		return CouponExpired
	default:
		return CouponUnused
	}
}

// SubmitReview submits a review for a spot and waits for it to confirm. Text
// and tags are packed into the structured content payload; rating is rounded
// to the nearest half point for storage.
func (s *Service) SubmitReview(ctx context.Context, spotID uint64, content string, tags []string, rating float64) (string, error) {
	const op = "review submit"
	if tags == nil {
		tags = []string{}
	}
	payload, err := json.Marshal(reviewPayload{Content: content, Tags: tags})
	if err != nil {
		return "", s.fail(op, err)
	}
	signer, backend, err := s.session(ctx)
	if err != nil {
		return "", s.fail(op, err)
	}
	reviews, err := binding.NewScenicReviewSystem(signer, s.addrs.ReviewSystem, backend)
	if err != nil {
		return "", s.fail(op, err)
	}
	raw := big.NewInt(int64(math.Round(rating * 2)))
	tx, err := reviews.UserSubmitReview(new(big.Int).SetUint64(spotID), string(payload), raw)
	if err != nil {
		return "", s.fail(op, err)
	}
	if _, err := s.waitConfirmed(ctx, backend, tx); err != nil {
		return "", s.fail(op, err)
	}
	s.log.Info("Review submitted", "spot", spotID, "tx", tx.Hash())
	return tx.Hash().Hex(), nil
}

// UserReviews returns every review the signing account has submitted.
func (s *Service) UserReviews(ctx context.Context) ([]Review, error) {
	const op = "user reviews"
	account, err := s.account()
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	raw, err := reviews.GetUserReviews(ctx, account)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]Review, 0, len(raw))
	for _, r := range raw {
		out = append(out, decodeReview(r.User, r.ScenicId, r.Content, r.Rating, uint8(u64(r.Status)), r.Rewarded, r.RewardAmount, r.Timestamp, r.TxHash))
	}
	return out, nil
}

// HistoricalReviews returns every review recorded for a spot.
func (s *Service) HistoricalReviews(ctx context.Context, spotID uint64) ([]Review, error) {
	const op = "spot reviews"
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	raw, err := reviews.GetHistoricalReviews(ctx, new(big.Int).SetUint64(spotID))
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]Review, 0, len(raw))
	for _, r := range raw {
		out = append(out, decodeReview(r.User, r.ScenicId, r.Content, r.Rating, r.Status, r.Rewarded, r.RewardAmount, r.Timestamp, r.TxHash))
	}
	return out, nil
}

// HistoricalReviewsCount returns the number of reviews recorded for a spot.
func (s *Service) HistoricalReviewsCount(ctx context.Context, spotID uint64) (uint64, error) {
	const op = "spot review count"
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return 0, s.fail(op, err)
	}
	count, err := reviews.GetHistoricalReviewsCount(ctx, new(big.Int).SetUint64(spotID))
	if err != nil {
		return 0, s.fail(op, err)
	}
	return u64(count), nil
}

// HistoricalSummaries returns every AI summary recorded for a spot.
func (s *Service) HistoricalSummaries(ctx context.Context, spotID uint64) ([]ReviewSummary, error) {
	const op = "spot summaries"
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	raw, err := reviews.GetHistoricalSummaries(ctx, new(big.Int).SetUint64(spotID))
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]ReviewSummary, 0, len(raw))
	for _, r := range raw {
		out = append(out, decodeSummary(r))
	}
	return out, nil
}

// ScenicSpot returns one spot with its latest summary.
func (s *Service) ScenicSpot(ctx context.Context, spotID uint64) (SpotDetail, error) {
	const op = "spot detail"
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return SpotDetail{}, s.fail(op, err)
	}
	spot, summary, err := reviews.GetScenicSpot(ctx, new(big.Int).SetUint64(spotID))
	if err != nil {
		return SpotDetail{}, s.fail(op, err)
	}
	return SpotDetail{Spot: decodeSpot(spot), Summary: decodeSummary(summary)}, nil
}

// ScenicSpotList returns the details of every listed spot, in the order the
// contract lists them. Details are fetched concurrently into index-addressed
// slots so completion order never reorders the result.
func (s *Service) ScenicSpotList(ctx context.Context) ([]SpotDetail, error) {
	const op = "spot list"
	reviews, err := s.reviewContract(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	ids, err := reviews.GetScenicSpotList(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	details := make([]SpotDetail, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id *big.Int) {
			defer wg.Done()
			details[i], errs[i] = s.ScenicSpot(ctx, u64(id))
		}(i, id)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			s.log.Warn("Spot fetch failed", "spot", ids[i], "err", err)
			return nil, err
		}
	}
	return details, nil
}

// CompareScenicSpots fetches two spots for side-by-side display.
func (s *Service) CompareScenicSpots(ctx context.Context, first, second uint64) (SpotComparison, error) {
	a, err := s.ScenicSpot(ctx, first)
	if err != nil {
		return SpotComparison{}, err
	}
	b, err := s.ScenicSpot(ctx, second)
	if err != nil {
		return SpotComparison{}, err
	}
	return SpotComparison{First: a, Second: b}, nil
}

// UserLevelInfo returns the signing account's level record.
func (s *Service) UserLevelInfo(ctx context.Context) (UserLevelInfo, error) {
	const op = "user level"
	account, err := s.account()
	if err != nil {
		return UserLevelInfo{}, err
	}
	level, err := s.levelContract(ctx)
	if err != nil {
		return UserLevelInfo{}, s.fail(op, err)
	}
	info, err := level.GetUserLevelInfo(ctx, account)
	if err != nil {
		return UserLevelInfo{}, s.fail(op, err)
	}
	current := u64(info.Level)
	return UserLevelInfo{
		Level:       current,
		LastUpgrade: FormatTimestamp(info.LastUpgrade),
		NextLevel:   current + 1,
	}, nil
}

// UserReviewReward returns the TRT reward the signing account earns per
// accepted review.
func (s *Service) UserReviewReward(ctx context.Context) (string, error) {
	const op = "review reward"
	account, err := s.account()
	if err != nil {
		return "", err
	}
	level, err := s.levelContract(ctx)
	if err != nil {
		return "", s.fail(op, err)
	}
	reward, err := level.GetUserReviewReward(ctx, account)
	if err != nil {
		return "", s.fail(op, err)
	}
	return FormatToken(reward), nil
}

// LevelRule returns the cost and reward of one level.
func (s *Service) LevelRule(ctx context.Context, level uint64) (LevelRule, error) {
	const op = "level rule"
	contract, err := s.levelContract(ctx)
	if err != nil {
		return LevelRule{}, s.fail(op, err)
	}
	rule, err := contract.LevelRules(ctx, new(big.Int).SetUint64(level))
	if err != nil {
		return LevelRule{}, s.fail(op, err)
	}
	return LevelRule{
		RequiredToken: FormatToken(rule.RequiredToken),
		ReviewReward:  FormatToken(rule.ReviewReward),
	}, nil
}

// MaxLevel returns the highest reachable level.
func (s *Service) MaxLevel(ctx context.Context) (uint64, error) {
	const op = "max level"
	contract, err := s.levelContract(ctx)
	if err != nil {
		return 0, s.fail(op, err)
	}
	max, err := contract.MaxLevel(ctx)
	if err != nil {
		return 0, s.fail(op, err)
	}
	return u64(max), nil
}

// UpgradeLevel advances the signing account to the next level: look up the
// next level's token requirement, approve the level contract for that amount,
// wait for the approval, then upgrade and wait again.
func (s *Service) UpgradeLevel(ctx context.Context) (string, error) {
	const op = "level upgrade"
	account, err := s.account()
	if err != nil {
		return "", err
	}
	signer, backend, err := s.session(ctx)
	if err != nil {
		return "", s.fail(op, err)
	}
	levels, err := binding.NewUserLevel(signer, s.addrs.UserLevel, backend)
	if err != nil {
		return "", s.fail(op, err)
	}
	token, err := binding.NewTravelToken(signer, s.addrs.Token, backend)
	if err != nil {
		return "", s.fail(op, err)
	}
	current, err := levels.GetUserLevel(ctx, account)
	if err != nil {
		return "", s.fail(op, err)
	}
	next := new(big.Int).Add(current, big.NewInt(1))
	rule, err := levels.LevelRules(ctx, next)
	if err != nil {
		return "", s.fail(op, err)
	}
	approval, err := token.Approve(s.addrs.UserLevel, rule.RequiredToken)
	if err != nil {
		return "", s.fail(op, err)
	}
	if _, err := s.waitConfirmed(ctx, backend, approval); err != nil {
		return "", s.fail(op, err)
	}
	upgrade, err := levels.Upgrade()
	if err != nil {
		return "", s.fail(op, err)
	}
	if _, err := s.waitConfirmed(ctx, backend, upgrade); err != nil {
		return "", s.fail(op, err)
	}
	s.log.Info("Level upgraded", "to", next, "tx", upgrade.Hash())
	return upgrade.Hash().Hex(), nil
}

func decodeSpot(r binding.SpotInfo) ScenicSpot {
	return ScenicSpot{
		ID:            u64(r.ScenicId),
		Name:          r.Name,
		Location:      r.Location,
		Description:   r.Description,
		Tags:          splitTags(r.Tags),
		ReviewCount:   u64(r.ReviewCount),
		AverageRating: AverageRating(r.AverageRating),
		Active:        r.Active,
	}
}

func decodeSummary(r binding.SummaryInfo) ReviewSummary {
	ids := make([]uint64, 0, len(r.ReviewIds))
	for _, id := range r.ReviewIds {
		ids = append(ids, u64(id))
	}
	version := u64(r.Version)
	if version == 0 {
		version = 1
	}
	return ReviewSummary{
		SpotID:          u64(r.ScenicId),
		Content:         r.Content,
		ReviewIDs:       ids,
		Timestamp:       FormatTimestamp(r.Timestamp),
		LastReviewIndex: u64(r.LastReviewIndex),
		Version:         version,
		TxHash:          FormatTxHash(r.TxHash),
		Analysis:        ParseSummaryContent(r.Content),
	}
}

func decodeReview(user common.Address, spotID *big.Int, content string, rating *big.Int, status uint8, rewarded bool, reward, ts *big.Int, txHash [32]byte) Review {
	text, tags := ParseReviewContent(content)
	return Review{
		Reviewer:     user,
		SpotID:       u64(spotID),
		Content:      text,
		Tags:         tags,
		Rating:       ReviewRating(rating),
		Status:       reviewStatus(status),
		Rewarded:     rewarded,
		RewardAmount: FormatToken(reward),
		Timestamp:    FormatTimestamp(ts),
		TxHash:       FormatTxHash(txHash),
	}
}

func reviewStatus(raw uint8) ReviewStatus {
	switch raw {
	case 1:
		return ReviewAccepted
	case 2:
		return ReviewRejected
	default:
		return ReviewPending
	}
}

func u64(v *big.Int) uint64 {
	if v == nil || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}
