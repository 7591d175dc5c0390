package travel

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"

	"github.com/JacenYi/TravelTrust/contracts/travel/contract"
)

func TestABIsParse(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		methods []string
	}{
		{
			name:    "TravelToken",
			src:     contract.TravelTokenABI,
			methods: []string{"balanceOf", "approve", "getUserTransactions", "getUserTransactionCount"},
		},
		{
			name: "ScenicReviewSystem",
			src:  contract.ScenicReviewSystemABI,
			methods: []string{
				"getScenicSpot", "getScenicSpotList", "getHistoricalSummaries",
				"getHistoricalReviews", "getHistoricalReviewsCount", "getUserReviews", "userSubmitReview",
			},
		},
		{
			name:    "CouponSystem",
			src:     contract.CouponSystemABI,
			methods: []string{"getAllCoupons", "getUserActiveCoupons", "purchaseCoupon", "verifyCoupon"},
		},
		{
			name: "UserLevel",
			src:  contract.UserLevelABI,
			methods: []string{
				"getUserLevelInfo", "getUserLevel", "getUserReviewReward",
				"levelRules", "maxLevel", "upgrade",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parsed, err := abi.JSON(strings.NewReader(c.src))
			require.NoError(t, err)
			for _, m := range c.methods {
				_, ok := parsed.Methods[m]
				require.True(t, ok, "method %s missing", m)
			}
		})
	}
}

func TestReviewStatusWidths(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(contract.ScenicReviewSystemABI))
	require.NoError(t, err)

	// The deployed interface declares the review status as uint8 on the
	// per-spot query but uint256 on the per-user query.
	historical := parsed.Methods["getHistoricalReviews"].Outputs[0].Type.Elem
	userSide := parsed.Methods["getUserReviews"].Outputs[0].Type.Elem

	statusType := func(tuple *abi.Type) string {
		for i, name := range tuple.TupleRawNames {
			if name == "status" {
				return tuple.TupleElems[i].String()
			}
		}
		return ""
	}
	require.Equal(t, "uint8", statusType(historical))
	require.Equal(t, "uint256", statusType(userSide))
}
