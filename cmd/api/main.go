package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/api"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/api/handler"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/api/middleware"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/application"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/config"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/infrastructure/postgres"
	redisinfra "github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/infrastructure/redis"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pipeline"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/logger"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/metrics"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/worker"
)

func main() {
	// .envがあれば読み込む（なくてもよい）
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Env))
	defer logger.Sync()
	log := logger.Get()

	m := metrics.Init()

	// PostgreSQL
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db.DB, "migrations"); err != nil {
		log.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis（接続できない場合はキャッシュなしで続行）
	var cache application.Cache
	redisClient := redisinfra.NewClient(&cfg.Redis)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisinfra.Ping(pingCtx, redisClient); err != nil {
		log.Warn("Redis接続に失敗（キャッシュなしで続行）", zap.Error(err))
		redisClient.Close()
	} else {
		cache = redisinfra.NewReservationCache(redisClient, cfg.Reservation.CacheTTL)
		defer redisClient.Close()
	}
	cancelPing()

	// リポジトリとトランザクション管理
	reservationRepo := postgres.NewReservationRepository(db)
	txManager := postgres.NewTxManager(db)

	// パイプライン：バリデーション → ログ → メトリクスの順
	p := pipeline.New(
		pipeline.NewValidationBehavior(),
		pipeline.NewLoggingBehavior(log),
		pipeline.NewMetricsBehavior(m),
	)

	policy := reservation.Policy{
		MinStartLead: cfg.Reservation.MinStartLead,
		MaxSpan:      cfg.Reservation.MaxSpan,
	}

	createHandler := application.NewCreateReservationHandler(reservationRepo, txManager, cache, m, policy)
	confirmHandler := application.NewConfirmReservationHandler(reservationRepo, txManager, cache, m)
	cancelHandler := application.NewCancelReservationHandler(reservationRepo, txManager, cache, m)
	listHandler := application.NewGetReservationsHandler(reservationRepo, cache)
	staleHandler := application.NewCancelStaleReservationsHandler(reservationRepo, txManager, cache, m)

	reservationHandler := handler.NewReservationHandler(p, createHandler, confirmHandler, cancelHandler, listHandler)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupMiddleware(e)
	e.Use(middleware.Prometheus(m))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()),
		middleware.MetricsBasicAuth(cfg.Metrics.Username, cfg.Metrics.Password))

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)
	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.GetByCustomer)
	v1.POST("/reservations/:id/confirm", reservationHandler.Confirm)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	// 未確定予約の定期キャンセルワーカー
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	canceller := worker.NewStaleReservationCanceller(
		&staleDispatcher{pipeline: p, handler: staleHandler},
		cfg.Reservation.StaleCheckInterval,
	)
	go canceller.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("サーバーをシャットダウンしています")

	canceller.Stop()
	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	log.Info("サーバーが正常にシャットダウンしました")
}

// staleDispatcher はワーカーの実行をパイプライン経由のコマンドに変換する
type staleDispatcher struct {
	pipeline *pipeline.Pipeline
	handler  *application.CancelStaleReservationsHandler
}

func (d *staleDispatcher) CancelStaleReservations(ctx context.Context) (int, error) {
	result, err := pipeline.Execute(ctx, d.pipeline, d.handler, application.CancelStaleReservationsCommand{})
	if err != nil {
		return 0, err
	}
	return result.Cancelled, nil
}
