// travelcli is the command-line client of the TravelTrust platform.
//
// It manages a persistent wallet session against an Ethereum node and drives
// the four deployed contracts: TRT balance and ledger, scenic spots with
// AI review summaries, the coupon shop and the user level system.
//
// Usage:
//
//	travelcli [global flags] <command> [args]
//
// Configuration comes from TRAVEL_* environment variables (a .env file is
// honored); flags override the environment.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/JacenYi/TravelTrust/config"
	"github.com/JacenYi/TravelTrust/travel"
	"github.com/JacenYi/TravelTrust/wallet"
)

var (
	app = cli.NewApp()

	// Flags
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "Ethereum JSON-RPC endpoint",
	}
	keyfileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "Path to the encrypted JSON keyfile",
	}
	passphraseFlag = cli.StringFlag{
		Name:  "passphrase",
		Usage: "Keyfile passphrase",
	}
	sessionFlag = cli.StringFlag{
		Name:  "session",
		Usage: "Path of the persisted session record",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "Deployed TravelToken contract address",
	}
	reviewFlag = cli.StringFlag{
		Name:  "review",
		Usage: "Deployed ScenicReviewSystem contract address",
	}
	couponFlag = cli.StringFlag{
		Name:  "coupon",
		Usage: "Deployed CouponSystem contract address",
	}
	levelFlag = cli.StringFlag{
		Name:  "level",
		Usage: "Deployed UserLevel contract address",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	}
)

func init() {
	app.Name = "travelcli"
	app.Usage = "Blockchain travel platform client"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		rpcFlag,
		keyfileFlag,
		passphraseFlag,
		sessionFlag,
		tokenFlag,
		reviewFlag,
		couponFlag,
		levelFlag,
		verboseFlag,
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{Name: "status", Usage: "Show the current wallet session", Action: statusCmd},
		{Name: "connect", Usage: "Connect the wallet and persist the session", Action: connectCmd},
		{Name: "disconnect", Usage: "Disconnect and clear the persisted session", Action: disconnectCmd},
		{Name: "balance", Usage: "Show the TRT balance", Action: balanceCmd},
		{Name: "transactions", Usage: "List the token ledger", Action: transactionsCmd},
		{Name: "spots", Usage: "List all scenic spots", Action: spotsCmd},
		{Name: "spot", Usage: "Show one scenic spot: spot <id>", Action: spotCmd},
		{Name: "compare", Usage: "Compare two spots: compare <id> <id>", Action: compareCmd},
		{Name: "coupons", Usage: "List the coupon shop", Action: couponsCmd},
		{Name: "my-coupons", Usage: "List owned coupons", Action: myCouponsCmd},
		{Name: "buy-coupon", Usage: "Buy a coupon: buy-coupon <id> <price>", Action: buyCouponCmd},
		{Name: "verify-coupon", Usage: "Redeem a coupon: verify-coupon <code>", Action: verifyCouponCmd},
		{Name: "reviews", Usage: "List own reviews, or a spot's: reviews [spot-id]", Action: reviewsCmd},
		{Name: "submit-review", Usage: "Submit a review: submit-review <spot-id> <rating> <text> [tags...]", Action: submitReviewCmd},
		{Name: "level", Usage: "Show level info and upgrade cost", Action: levelCmd},
		{Name: "upgrade", Usage: "Upgrade to the next level", Action: upgradeCmd},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	level := log.LevelInfo
	if ctx.GlobalBool("verbose") {
		level = log.LevelDebug
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
	return nil
}

// loadConfig merges environment configuration with command-line overrides.
func loadConfig(ctx *cli.Context) config.Config {
	cfg := config.Load()
	if v := ctx.GlobalString("rpc"); v != "" {
		cfg.RPCURL = v
	}
	if v := ctx.GlobalString("keyfile"); v != "" {
		cfg.Keyfile = v
	}
	if v := ctx.GlobalString("passphrase"); v != "" {
		cfg.Passphrase = v
	}
	if v := ctx.GlobalString("session"); v != "" {
		cfg.SessionFile = v
	}
	if v := ctx.GlobalString("token"); v != "" {
		cfg.TokenAddress = v
	}
	if v := ctx.GlobalString("review"); v != "" {
		cfg.ReviewSystemAddress = v
	}
	if v := ctx.GlobalString("coupon"); v != "" {
		cfg.CouponSystemAddress = v
	}
	if v := ctx.GlobalString("level"); v != "" {
		cfg.UserLevelAddress = v
	}
	return cfg
}

// newManager builds the wallet manager with the keyfile provider registered.
func newManager(cfg config.Config) (*wallet.Manager, error) {
	if cfg.Keyfile == "" {
		return nil, fmt.Errorf("no keyfile configured (set TRAVEL_KEYFILE or --keyfile)")
	}
	provider, err := wallet.NewKeyfileProvider(cfg.WalletID, cfg.RPCURL, cfg.Keyfile, cfg.Passphrase)
	if err != nil {
		return nil, err
	}
	store := wallet.NewFileStore(cfg.SessionFile)
	return wallet.NewManager(store, cfg.Network, provider), nil
}

// connected restores the persisted session and returns a ready service.
func connected(ctx *cli.Context) (*wallet.Manager, *travel.Service, error) {
	cfg := loadConfig(ctx)
	manager, err := newManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	ok, err := manager.Restore(context.Background())
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("no active session, run `travelcli connect` first")
	}
	addrs, err := cfg.Addresses()
	if err != nil {
		return nil, nil, err
	}
	return manager, travel.NewService(manager, addrs), nil
}

func statusCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	manager, err := newManager(cfg)
	if err != nil {
		return err
	}
	ok, err := manager.Restore(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("disconnected")
		return nil
	}
	session := manager.Session()
	fmt.Printf("connected  %s  chain=%s  network=%s\n", session.ShortAddress(), session.ChainID, session.Network)
	return nil
}

func connectCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	manager, err := newManager(cfg)
	if err != nil {
		return err
	}
	session, err := manager.Connect(context.Background(), cfg.WalletID)
	if err != nil {
		return err
	}
	fmt.Printf("connected %s on chain %s\n", session.Address.Hex(), session.ChainID)
	return nil
}

func disconnectCmd(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	manager, err := newManager(cfg)
	if err != nil {
		return err
	}
	if _, err := manager.Restore(context.Background()); err != nil {
		return err
	}
	manager.Disconnect(context.Background())
	fmt.Println("disconnected")
	return nil
}

func balanceCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	balance, err := svc.TokenBalance(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s TRT\n", balance)
	return nil
}

func transactionsCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	txs, err := svc.UserTransactions(context.Background())
	if err != nil {
		return err
	}
	for _, tx := range txs {
		fmt.Printf("#%d  %-8s  %12s TRT  %s  %s\n", tx.ID, tx.Action, tx.Amount, tx.Timestamp, tx.Description)
	}
	return nil
}

func spotsCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	spots, err := svc.ScenicSpotList(context.Background())
	if err != nil {
		return err
	}
	for _, d := range spots {
		fmt.Printf("#%d  %-20s  %.1f/10  %d reviews  %s\n",
			d.Spot.ID, d.Spot.Name, d.Spot.AverageRating, d.Spot.ReviewCount, d.Spot.Location)
	}
	return nil
}

func spotCmd(ctx *cli.Context) error {
	id, err := argUint(ctx, 0, "spot id")
	if err != nil {
		return err
	}
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	detail, err := svc.ScenicSpot(context.Background(), id)
	if err != nil {
		return err
	}
	printSpot(detail)
	return nil
}

func compareCmd(ctx *cli.Context) error {
	first, err := argUint(ctx, 0, "first spot id")
	if err != nil {
		return err
	}
	second, err := argUint(ctx, 1, "second spot id")
	if err != nil {
		return err
	}
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	cmp, err := svc.CompareScenicSpots(context.Background(), first, second)
	if err != nil {
		return err
	}
	printSpot(cmp.First)
	fmt.Println("----")
	printSpot(cmp.Second)
	return nil
}

func printSpot(d travel.SpotDetail) {
	fmt.Printf("#%d %s (%s)\n", d.Spot.ID, d.Spot.Name, d.Spot.Location)
	fmt.Printf("  rating %.1f/10 over %d reviews, tags: %s\n",
		d.Spot.AverageRating, d.Spot.ReviewCount, strings.Join(d.Spot.Tags, ", "))
	a := d.Summary.Analysis
	fmt.Printf("  summary v%d: +%d =%d -%d (positive %s)\n",
		d.Summary.Version, a.Positive, a.Neutral, a.Negative, a.PositiveRate)
	fmt.Printf("  %s\n", a.CoreFeedback)
	fmt.Printf("  season %s, crowd %s, price %s, duration %s\n",
		a.BestSeason, a.CrowdLevel, a.PriceLevel, a.SuggestedDuration)
}

func couponsCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	coupons, err := svc.AllCoupons(context.Background())
	if err != nil {
		return err
	}
	for _, c := range coupons {
		fmt.Printf("#%d  %-20s  %10s TRT  %d/%d left  %s\n",
			c.ID, c.Name, c.Price, c.Remaining, c.MaxSupply, c.Tag)
	}
	return nil
}

func myCouponsCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	coupons, err := svc.UserActiveCoupons(context.Background())
	if err != nil {
		return err
	}
	for _, c := range coupons {
		fmt.Printf("%s  %-20s  %-8s  expires %s\n", c.Code, c.Name, c.Status, c.ExpiryDate)
	}
	return nil
}

func buyCouponCmd(ctx *cli.Context) error {
	id, err := argUint(ctx, 0, "coupon id")
	if err != nil {
		return err
	}
	price := ctx.Args().Get(1)
	if price == "" {
		return fmt.Errorf("missing price argument")
	}
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	hash, err := svc.PurchaseCoupon(context.Background(), id, price)
	if err != nil {
		return err
	}
	fmt.Printf("purchased, tx %s\n", hash)
	return nil
}

func verifyCouponCmd(ctx *cli.Context) error {
	code := ctx.Args().First()
	if code == "" {
		return fmt.Errorf("missing coupon code argument")
	}
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	receipt, err := svc.VerifyCoupon(context.Background(), code)
	if err != nil {
		return err
	}
	fmt.Printf("redeemed, tx %s\n", receipt.TxHash.Hex())
	return nil
}

func reviewsCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	var reviews []travel.Review
	if ctx.NArg() > 0 {
		id, err := argUint(ctx, 0, "spot id")
		if err != nil {
			return err
		}
		reviews, err = svc.HistoricalReviews(context.Background(), id)
		if err != nil {
			return err
		}
	} else {
		reviews, err = svc.UserReviews(context.Background())
		if err != nil {
			return err
		}
	}
	for _, r := range reviews {
		fmt.Printf("spot %d  %.1f  %-8s  %s  %s\n", r.SpotID, r.Rating, r.Status, r.Timestamp, r.Content)
	}
	return nil
}

func submitReviewCmd(ctx *cli.Context) error {
	id, err := argUint(ctx, 0, "spot id")
	if err != nil {
		return err
	}
	rating, err := strconv.ParseFloat(ctx.Args().Get(1), 64)
	if err != nil {
		return fmt.Errorf("invalid rating: %v", err)
	}
	text := ctx.Args().Get(2)
	if text == "" {
		return fmt.Errorf("missing review text argument")
	}
	tags := ctx.Args()[3:]
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	hash, err := svc.SubmitReview(context.Background(), id, text, tags, rating)
	if err != nil {
		return err
	}
	fmt.Printf("submitted, tx %s\n", hash)
	return nil
}

func levelCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	info, err := svc.UserLevelInfo(context.Background())
	if err != nil {
		return err
	}
	reward, err := svc.UserReviewReward(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("level %d, review reward %s TRT", info.Level, reward)
	if info.LastUpgrade != "" {
		fmt.Printf(", last upgrade %s", info.LastUpgrade)
	}
	fmt.Println()
	max, err := svc.MaxLevel(context.Background())
	if err != nil {
		return err
	}
	if info.Level >= max {
		fmt.Println("already at max level")
		return nil
	}
	rule, err := svc.LevelRule(context.Background(), info.NextLevel)
	if err != nil {
		return err
	}
	fmt.Printf("next level %d costs %s TRT (reward becomes %s TRT)\n",
		info.NextLevel, rule.RequiredToken, rule.ReviewReward)
	return nil
}

func upgradeCmd(ctx *cli.Context) error {
	_, svc, err := connected(ctx)
	if err != nil {
		return err
	}
	hash, err := svc.UpgradeLevel(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("upgraded, tx %s\n", hash)
	return nil
}

func argUint(ctx *cli.Context, i int, name string) (uint64, error) {
	raw := ctx.Args().Get(i)
	if raw == "" {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
