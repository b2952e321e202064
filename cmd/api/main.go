package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "github.com/SahanThiwanka/pawn-platform-sub000/internal/adapter/http"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/adapter/middleware"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/adapter/repository/mysql"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/config"
	auctionDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/infrastructure/cache"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/infrastructure/db"
	auctionUC "github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/auction"
	collateralUC "github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/collateral"
	ledgerUC "github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/ledger"
	offerUC "github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/offer"
	paymentUC "github.com/SahanThiwanka/pawn-platform-sub000/internal/usecase/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", map[string]any{"error": err.Error()})
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("mysql connect failed", map[string]any{"error": err.Error()})
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("migrate failed", map[string]any{"error": err.Error()})
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connect failed", map[string]any{"error": err.Error()})
	}

	guow := mysql.NewGormUoW(gdb)

	var policy auctionDomain.IncrementPolicy
	switch cfg.BidIncrementPolicy {
	case "tiered":
		policy = auctionDomain.TieredIncrement(auctionDomain.DefaultTiers)
	default:
		policy = auctionDomain.PercentIncrement(cfg.BidIncrementPct)
	}

	collaterals := collateralUC.NewUsecase(mysql.NewCollateralRepository(gdb))
	offers := offerUC.NewUsecase(guow)
	ledgers := ledgerUC.NewUsecase(guow)
	payments := paymentUC.NewUsecase(guow)
	auctions := auctionUC.NewUsecase(guow, policy)

	h := httpadp.NewHandler(gdb, rdb)
	ch := httpadp.NewCollateralHandler(collaterals)
	lh := httpadp.NewLoanHandler(offers, ledgers)
	ph := httpadp.NewPaymentHandler(payments)
	ah := httpadp.NewAuctionHandler(auctions)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Identity())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)

	e.POST("/collaterals", ch.Register)
	e.GET("/collaterals/:collateral_id", ch.Get)
	e.POST("/collaterals/:collateral_id/offers", lh.CreateOffer)

	e.POST("/loan-requests", lh.SubmitRequest)
	e.POST("/loan-requests/:request_id/accept", lh.AcceptRequest)
	e.POST("/loan-requests/:request_id/decline", lh.DeclineRequest)

	e.GET("/loans/:loan_id", lh.GetLoan)
	e.POST("/loans/:loan_id/accept", lh.AcceptOffer)
	e.POST("/loans/:loan_id/topup", lh.Topup)
	e.POST("/loans/:loan_id/settle", lh.Settle)
	e.POST("/loans/:loan_id/default", lh.MarkDefaulted)
	e.POST("/loans/:loan_id/late-fees", lh.AddLateFee)
	e.POST("/loans/:loan_id/payments", lh.RecordCash)

	e.POST("/payments/:payment_id/approve", ph.Approve)
	e.POST("/payments/:payment_id/decline", ph.Decline)

	e.POST("/auctions", ah.Schedule)
	e.GET("/auctions/:auction_id", ah.Get)
	e.POST("/auctions/:auction_id/bids", ah.PlaceBid)
	e.POST("/auctions/:auction_id/settle", ah.Settle)

	// The boundary sweep is the only time-driven piece: nothing else flips
	// scheduled→live or live→ended at the right instant.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		tick := time.NewTicker(time.Duration(cfg.SweepIntervalSecs) * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case now := <-tick.C:
				if err := auctions.Sweep(sweepCtx, now.UTC()); err != nil {
					logger.Error("auction sweep pass failed", map[string]any{"error": err.Error()})
				}
			}
		}
	}()

	addr := ":" + cfg.AppPort
	logger.Info("listening", map[string]any{"addr": addr})
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
}
