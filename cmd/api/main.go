package main

import (
	"context"
	"log/slog"
	"os"

	httpadp "lombard-backend/internal/adapter/http"
	"lombard-backend/internal/adapter/notification"
	"lombard-backend/internal/adapter/repository/mysql"
	"lombard-backend/internal/config"
	"lombard-backend/internal/infrastructure/cache"
	"lombard-backend/internal/infrastructure/db"
	"lombard-backend/internal/logger"
	"lombard-backend/internal/usecase/collateral"
	"lombard-backend/internal/usecase/funding"
	"lombard-backend/internal/usecase/fx"
	loanuc "lombard-backend/internal/usecase/loan"
	"lombard-backend/internal/usecase/repayment"
	"lombard-backend/internal/usecase/trust"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		slog.Error("mysql connect", "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connect", "err", err)
		os.Exit(1)
	}

	var sink notification.Sink = notification.LogSink{}
	if cfg.PubSubProjectID != "" {
		ps, err := notification.NewPubSubSink(context.Background(), cfg.PubSubProjectID, cfg.NotifTopic)
		if err != nil {
			slog.Error("pubsub connect", "err", err)
			os.Exit(1)
		}
		defer ps.Close()
		sink = ps
	}

	uw := mysql.NewGormUoW(gdb)
	trustCalc := trust.NewCalculator(uw)

	handlers := httpadp.Handlers{
		Health:     httpadp.NewHandler(),
		Collateral: httpadp.NewCollateralHandler(collateral.NewUsecase(uw, sink)),
		Loan:       httpadp.NewLoanHandler(loanuc.NewUsecase(uw, sink)),
		Funding:    httpadp.NewFundingHandler(funding.NewUsecase(uw, sink)),
		Repayment:  httpadp.NewRepaymentHandler(repayment.NewUsecase(uw, sink, trustCalc)),
		Fx: httpadp.NewFxHandler(fx.NewCache(fx.StaticSource{
			"USD/IDR": 15800,
			"USD/EUR": 0.91,
			"USD/SGD": 1.34,
			"EUR/USD": 1.10,
		}, cfg.FxTTL(), nil)),
	}

	e := httpadp.NewEcho(handlers, rdb, cfg.IdempTTL())

	addr := ":" + cfg.AppPort
	slog.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
