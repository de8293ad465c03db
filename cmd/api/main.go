package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/memory"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 保存先の組み合わせ
type stores struct {
	carts    repository.CartRepository
	receipts repository.ReceiptRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	closers  []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// loggerはまだ無いので標準エラーへ
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	st, err := buildStores(cfg, log)
	if err != nil {
		log.Fatal("init stores", zap.Error(err))
	}
	defer func() {
		for _, c := range st.closers {
			_ = c()
		}
	}()

	//商品カタログは常にメモリ（起動時に固定）
	products := memory.NewProductStore(memory.SeedProducts())

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	productUC := usecase.NewProductUsecase(products)
	cartUC := usecase.NewCartUsecase(st.carts, products)
	checkoutUC := usecase.NewCheckoutUsecase(
		st.tx,
		st.receipts,
		products,
		validator.NewCheckoutValidator(),
		idGen,
		clock,
		log.Named("checkout"),
		cfg.CheckoutReprice,
	)
	authUC := usecase.NewAuthUsecase(cfg, st.users, validator.NewAuthValidator(st.users), idGen, clock)

	//Handler生成
	e := server.New(cfg, log, server.Handlers{
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Auth:     handler.NewAuthHandler(authUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}

// STORE_DRIVERとREDIS_URLから保存先を組み立てる
func buildStores(cfg config.Config, log *zap.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		//DB接続
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, err
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			st.closers = append(st.closers, sqlDB.Close)
		}

		//Repository（GORM実装）生成
		st.carts = infraRepo.NewCartGormRepository(gormDB)
		st.receipts = infraRepo.NewReceiptGormRepository(gormDB)
		st.users = infraRepo.NewUserGormRepository(gormDB)
		st.tx = infraRepo.NewTxManagerGorm(gormDB)
		log.Info("store: postgres")

	default:
		carts := memory.NewCartStore()
		receipts := memory.NewReceiptStore()
		st.carts = carts
		st.receipts = receipts
		st.users = memory.NewUserStore()
		st.tx = memory.NewTxManager(carts, receipts)
		log.Info("store: memory")
	}

	if cfg.RedisURL == "" {
		return st, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	st.closers = append(st.closers, client.Close)

	cached := cache.NewCachedCartRepository(st.carts, cache.NewRedisCache(client, cfg.CartCacheTTL), log.Named("cart_cache"))
	st.carts = cached
	st.tx = cache.NewCachedTxManager(st.tx, cached)
	log.Info("cart cache: redis", zap.String("addr", opt.Addr))

	return st, nil
}
