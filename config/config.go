// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/JacenYi/TravelTrust/travel"
)

// Config is the full runtime configuration.
type Config struct {
	RPCURL      string
	Network     string
	WalletID    string
	Keyfile     string
	Passphrase  string
	SessionFile string

	TokenAddress        string
	ReviewSystemAddress string
	CouponSystemAddress string
	UserLevelAddress    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		RPCURL:      getEnv("TRAVEL_RPC_URL", "http://localhost:8545"),
		Network:     getEnv("TRAVEL_NETWORK", "ETH"),
		WalletID:    getEnv("TRAVEL_WALLET_ID", "keyfile"),
		Keyfile:     getEnv("TRAVEL_KEYFILE", ""),
		Passphrase:  getEnv("TRAVEL_PASSPHRASE", ""),
		SessionFile: getEnv("TRAVEL_SESSION_FILE", defaultSessionFile()),

		TokenAddress:        getEnv("TRAVEL_TOKEN_ADDRESS", ""),
		ReviewSystemAddress: getEnv("TRAVEL_REVIEW_ADDRESS", ""),
		CouponSystemAddress: getEnv("TRAVEL_COUPON_ADDRESS", ""),
		UserLevelAddress:    getEnv("TRAVEL_LEVEL_ADDRESS", ""),
	}
}

// Addresses validates the four contract addresses and returns them in the
// form the service consumes.
func (c Config) Addresses() (travel.Addresses, error) {
	var out travel.Addresses
	for _, f := range []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"TRAVEL_TOKEN_ADDRESS", c.TokenAddress, &out.Token},
		{"TRAVEL_REVIEW_ADDRESS", c.ReviewSystemAddress, &out.ReviewSystem},
		{"TRAVEL_COUPON_ADDRESS", c.CouponSystemAddress, &out.CouponSystem},
		{"TRAVEL_LEVEL_ADDRESS", c.UserLevelAddress, &out.UserLevel},
	} {
		if !common.IsHexAddress(f.value) {
			return travel.Addresses{}, fmt.Errorf("config: %s is not a valid address: %q", f.name, f.value)
		}
		*f.dst = common.HexToAddress(f.value)
	}
	return out, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".traveltrust", "session.json")
	}
	return filepath.Join(home, ".traveltrust", "session.json")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
