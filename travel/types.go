// Package travel is the contract access layer: it translates domain-level
// requests into calls against the four deployed TravelTrust contracts using
// the signing identity of the active wallet session, and decodes every result
// into the read-only view models below.
//
// All monetary amounts cross this boundary as decimal strings; the on-chain
// 18-decimal fixed-point representation never leaks to callers.
package travel

import "github.com/ethereum/go-ethereum/common"

// ScenicSpot is the static record of one tourist attraction.
type ScenicSpot struct {
	ID            uint64
	Name          string
	Location      string
	Description   string
	Tags          []string
	ReviewCount   uint64
	AverageRating float64 // 0-10 scale, decoded from the on-chain x10 value
	Active        bool
}

// SummaryAnalysis holds the fields derived from a summary's embedded JSON
// payload. Absent or malformed payloads yield the documented defaults:
// zero counts, an empty tag list and "/" placeholders for the display
// strings.
type SummaryAnalysis struct {
	Positive          int
	Neutral           int
	Negative          int
	PopularTags       []string
	OverallRating     float64
	CoreFeedback      string
	PositiveRate      string
	Location          string
	CrowdLevel        string
	BestSeason        string
	SuitablePeople    string
	PriceLevel        string
	SuggestedDuration string
	Transportation    string
}

// ReviewSummary is one AI-generated aggregate analysis of a spot's reviews.
type ReviewSummary struct {
	SpotID          uint64
	Content         string
	ReviewIDs       []uint64
	Timestamp       string // local calendar time, "" when unset
	LastReviewIndex uint64
	Version         uint64
	TxHash          string // "" for the all-zero sentinel
	Analysis        SummaryAnalysis
}

// ReviewStatus is the moderation state of a review.
type ReviewStatus uint8

const (
	ReviewPending ReviewStatus = iota
	ReviewAccepted
	ReviewRejected
)

// String returns the status label.
func (s ReviewStatus) String() string {
	switch s {
	case ReviewAccepted:
		return "accepted"
	case ReviewRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Review is one user review of a spot.
type Review struct {
	Reviewer     common.Address
	SpotID       uint64
	Content      string
	Tags         []string
	Rating       float64 // 0-5 half-point scale, decoded from the on-chain x2 value
	Status       ReviewStatus
	Rewarded     bool
	RewardAmount string // decimal TRT
	Timestamp    string
	TxHash       string
}

// CouponStatus is the redemption state of an owned coupon.
type CouponStatus uint8

const (
	CouponUnused CouponStatus = iota
	CouponUsed
	CouponExpired
)

// String returns the status label.
func (s CouponStatus) String() string {
	switch s {
	case CouponUsed:
		return "Used"
	case CouponExpired:
		return "Expired"
	default:
		return "Unused"
	}
}

// Coupon is one purchasable coupon definition.
type Coupon struct {
	ID           uint64
	Name         string
	Tag          string
	Description  string
	Price        string // decimal TRT
	MaxSupply    uint64
	Remaining    uint64 // maxSupply - soldCount
	ValidityDays uint64
	NFTName      string
	Active       bool
}

// UserCoupon is one coupon instance owned by a user.
type UserCoupon struct {
	ID           uint64
	Code         string
	Name         string
	Description  string
	Tag          string
	Price        string // decimal TRT
	ValidityDays uint64
	PurchaseDate string
	ExpiryDate   string
	Status       CouponStatus
}

// Transaction is one decoded token ledger entry. Action is collapsed to
// WITHDRAW or CONSUME.
type Transaction struct {
	ID          uint64
	From        common.Address
	To          common.Address
	Amount      string // decimal TRT
	Action      string
	Description string
	Timestamp   string
}

// UserLevelInfo is a user's level record with the derived next level.
type UserLevelInfo struct {
	Level       uint64
	LastUpgrade string // "" when the user never upgraded
	NextLevel   uint64
}

// LevelRule is the decoded cost/reward rule of one level.
type LevelRule struct {
	RequiredToken string // decimal TRT
	ReviewReward  string // decimal TRT
}

// SpotDetail pairs a spot with its latest summary.
type SpotDetail struct {
	Spot    ScenicSpot
	Summary ReviewSummary
}

// SpotComparison is the paired result of two independent spot fetches.
type SpotComparison struct {
	First  SpotDetail
	Second SpotDetail
}
