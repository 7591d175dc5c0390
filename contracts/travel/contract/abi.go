// Package contract contains the ABI definitions for the deployed TravelTrust
// contracts. The call signatures are fixed externally and must be matched
// byte-for-byte.
package contract

// TravelTokenABI is the ABI of the TravelToken (TRT) contract.
const TravelTokenABI = `[
	{
		"type": "function",
		"name": "balanceOf",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "approve",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "value",   "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "getUserTransactions",
		"stateMutability": "view",
		"inputs": [
			{"name": "user",  "type": "address"},
			{"name": "start", "type": "uint256"},
			{"name": "end",   "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "id",          "type": "uint256"},
			{"name": "from",        "type": "address"},
			{"name": "to",          "type": "address"},
			{"name": "amount",      "type": "uint256"},
			{"name": "action",      "type": "string"},
			{"name": "description", "type": "string"},
			{"name": "timestamp",   "type": "uint256"}
		]}]
	},
	{
		"type": "function",
		"name": "getUserTransactionCount",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

// ScenicReviewSystemABI is the ABI of the ScenicReviewSystem contract.
const ScenicReviewSystemABI = `[
	{
		"type": "function",
		"name": "getScenicSpot",
		"stateMutability": "view",
		"inputs": [{"name": "scenicId", "type": "uint256"}],
		"outputs": [
			{"name": "spot", "type": "tuple", "components": [
				{"name": "scenicId",      "type": "uint256"},
				{"name": "name",          "type": "string"},
				{"name": "location",      "type": "string"},
				{"name": "description",   "type": "string"},
				{"name": "tags",          "type": "string"},
				{"name": "reviewCount",   "type": "uint256"},
				{"name": "averageRating", "type": "uint256"},
				{"name": "active",        "type": "bool"}
			]},
			{"name": "summary", "type": "tuple", "components": [
				{"name": "scenicId",        "type": "uint256"},
				{"name": "content",         "type": "string"},
				{"name": "reviewIds",       "type": "uint256[]"},
				{"name": "timestamp",       "type": "uint256"},
				{"name": "lastReviewIndex", "type": "uint256"},
				{"name": "version",         "type": "uint256"},
				{"name": "txHash",          "type": "bytes32"}
			]}
		]
	},
	{
		"type": "function",
		"name": "getHistoricalSummaries",
		"stateMutability": "view",
		"inputs": [{"name": "scenicId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "scenicId",        "type": "uint256"},
			{"name": "content",         "type": "string"},
			{"name": "reviewIds",       "type": "uint256[]"},
			{"name": "timestamp",       "type": "uint256"},
			{"name": "lastReviewIndex", "type": "uint256"},
			{"name": "version",         "type": "uint256"},
			{"name": "txHash",          "type": "bytes32"}
		]}]
	},
	{
		"type": "function",
		"name": "getHistoricalReviews",
		"stateMutability": "view",
		"inputs": [{"name": "scenicId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "user",         "type": "address"},
			{"name": "scenicId",     "type": "uint256"},
			{"name": "content",      "type": "string"},
			{"name": "rating",       "type": "uint256"},
			{"name": "status",       "type": "uint8"},
			{"name": "rewarded",     "type": "bool"},
			{"name": "rewardAmount", "type": "uint256"},
			{"name": "timestamp",    "type": "uint256"},
			{"name": "version",      "type": "uint256"},
			{"name": "txHash",       "type": "bytes32"}
		]}]
	},
	{
		"type": "function",
		"name": "getUserReviews",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "user",         "type": "address"},
			{"name": "scenicId",     "type": "uint256"},
			{"name": "content",      "type": "string"},
			{"name": "rating",       "type": "uint256"},
			{"name": "status",       "type": "uint256"},
			{"name": "rewarded",     "type": "bool"},
			{"name": "rewardAmount", "type": "uint256"},
			{"name": "timestamp",    "type": "uint256"},
			{"name": "version",      "type": "uint256"},
			{"name": "txHash",       "type": "bytes32"}
		]}]
	},
	{
		"type": "function",
		"name": "userSubmitReview",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "scenicId", "type": "uint256"},
			{"name": "content",  "type": "string"},
			{"name": "rating",   "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "getScenicSpotList",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256[]"}]
	},
	{
		"type": "function",
		"name": "getHistoricalReviewsCount",
		"stateMutability": "view",
		"inputs": [{"name": "scenicId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

// CouponSystemABI is the ABI of the CouponSystem contract.
const CouponSystemABI = `[
	{
		"type": "function",
		"name": "getAllCoupons",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "couponId",     "type": "uint256"},
			{"name": "name",         "type": "string"},
			{"name": "description",  "type": "string"},
			{"name": "tag",          "type": "string"},
			{"name": "price",        "type": "uint256"},
			{"name": "maxSupply",    "type": "uint256"},
			{"name": "validityDays", "type": "uint256"},
			{"name": "soldCount",    "type": "uint256"},
			{"name": "active",       "type": "bool"},
			{"name": "nftName",      "type": "string"}
		]}]
	},
	{
		"type": "function",
		"name": "getUserActiveCoupons",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "tuple[]", "components": [
			{"name": "couponId",     "type": "uint256"},
			{"name": "couponCode",   "type": "string"},
			{"name": "name",         "type": "string"},
			{"name": "description",  "type": "string"},
			{"name": "tag",          "type": "string"},
			{"name": "price",        "type": "uint256"},
			{"name": "validityDays", "type": "uint256"},
			{"name": "purchaseDate", "type": "uint256"},
			{"name": "expiryDate",   "type": "uint256"},
			{"name": "status",       "type": "uint8"}
		]}]
	},
	{
		"type": "function",
		"name": "purchaseCoupon",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "couponId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "verifyCoupon",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "couponCode", "type": "string"}],
		"outputs": [{"name": "", "type": "bool"}]
	}
]`

// UserLevelABI is the ABI of the UserLevel contract.
const UserLevelABI = `[
	{
		"type": "function",
		"name": "getUserLevelInfo",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "tuple", "components": [
			{"name": "level",       "type": "uint256"},
			{"name": "lastUpgrade", "type": "uint256"}
		]}]
	},
	{
		"type": "function",
		"name": "getUserLevel",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "getUserReviewReward",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "levelRules",
		"stateMutability": "view",
		"inputs": [{"name": "", "type": "uint256"}],
		"outputs": [{"name": "", "type": "tuple", "components": [
			{"name": "requiredToken", "type": "uint256"},
			{"name": "reviewReward",  "type": "uint256"}
		]}]
	},
	{
		"type": "function",
		"name": "maxLevel",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "upgrade",
		"stateMutability": "nonpayable",
		"inputs": [],
		"outputs": [{"name": "", "type": "bool"}]
	}
]`
