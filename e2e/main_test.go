package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

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
)

var (
	testServer  *TestServer
	testDB      *sqlx.DB
	redisClient *redis.Client
)

// TestMain はE2Eテストのエントリポイント
// パッケージ全体で1回だけサーバーを起動することで高速化
func TestMain(m *testing.M) {
	cfg := config.Load()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		os.Exit(0) // DB未起動時はスキップ
	}
	testDB = db

	if err := postgres.RunMigrations(db.DB, "../migrations"); err != nil {
		db.Close()
		os.Exit(0)
	}

	// Redis接続（任意）
	var cache application.Cache
	rc := redisinfra.NewClient(&cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisinfra.Ping(ctx, rc); err == nil {
		redisClient = rc
		cache = redisinfra.NewReservationCache(rc, cfg.Reservation.CacheTTL)
	} else {
		rc.Close()
	}
	cancel()

	// ハンドラー初期化
	mtr := metrics.NewWithRegistry(prometheus.NewRegistry())
	reservationRepo := postgres.NewReservationRepository(db)
	txManager := postgres.NewTxManager(db)

	p := pipeline.New(
		pipeline.NewValidationBehavior(),
		pipeline.NewLoggingBehavior(logger.Get()),
		pipeline.NewMetricsBehavior(mtr),
	)

	policy := reservation.Policy{
		MinStartLead: cfg.Reservation.MinStartLead,
		MaxSpan:      cfg.Reservation.MaxSpan,
	}

	createHandler := application.NewCreateReservationHandler(reservationRepo, txManager, cache, mtr, policy)
	confirmHandler := application.NewConfirmReservationHandler(reservationRepo, txManager, cache, mtr)
	cancelHandler := application.NewCancelReservationHandler(reservationRepo, txManager, cache, mtr)
	listHandler := application.NewGetReservationsHandler(reservationRepo, cache)

	reservationHandler := handler.NewReservationHandler(p, createHandler, confirmHandler, cancelHandler, listHandler)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)
	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.GetByCustomer)
	v1.POST("/reservations/:id/confirm", reservationHandler.Confirm)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	testServer = &TestServer{Echo: e}

	// テスト実行
	code := m.Run()

	// 最終クリーンアップ
	cleanupTables()
	if redisClient != nil {
		redisClient.Close()
	}
	db.Close()

	os.Exit(code)
}

// cleanupTables はテーブルをクリーンアップ
func cleanupTables() {
	testDB.Exec("TRUNCATE TABLE reservations")
	if redisClient != nil {
		redisClient.FlushDB(context.Background())
	}
}

// getTestServer は共有サーバーを取得（テスト前にテーブルをクリーンアップ）
func getTestServer(t *testing.T) *TestServer {
	t.Helper()
	if testServer == nil {
		t.Skip("テスト環境が利用できません")
	}
	cleanupTables()
	return testServer
}
