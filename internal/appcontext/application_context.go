package appcontext

import (
	"context"
	"time"

	"github.com/lojify/storefront/internal/config"
	"github.com/lojify/storefront/internal/infra/producer"
	"github.com/lojify/storefront/internal/infra/repository/db"
	"github.com/lojify/storefront/internal/infra/repository/redis_repo"
	"github.com/lojify/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ApplicationContext 組裝後的服務集合，上層（HTTP/前台）只跟這裡拿依賴
type ApplicationContext struct {
	Cf              *config.Config
	Logger          *zap.Logger
	CartStorage     service.ICartStorage
	CouponService   service.ICouponService
	CheckoutService *service.CheckoutService
	OrderService    service.IOrderService

	dbDao    *db.DbDao
	rdb      *redis.Client
	producer *producer.OrderEventProducer
}

func NewApplicationContext(cf *config.Config, logger *zap.Logger) (*ApplicationContext, error) {
	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		return nil, err
	}
	dbDao := db.NewDbDao(conn)
	if err := dbDao.InitMigrate(); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPassword,
		DB:       cf.RedisDB,
	})

	orderProducer := producer.NewOrderEventProducer(cf.Brokers(), cf.OrderTopic)

	storeRepo := db.NewStoreRepo(dbDao)
	productRepo := db.NewProductRepo(dbDao)
	couponRepo := db.NewCouponRepo(dbDao)
	orderRepo := db.NewOrderRepo(dbDao)

	couponService := service.NewCouponService(couponRepo, logger)

	return &ApplicationContext{
		Cf:            cf,
		Logger:        logger,
		CartStorage:   redis_repo.NewCartRepo(rdb, time.Duration(cf.CartTTLHours)*time.Hour),
		CouponService: couponService,
		CheckoutService: service.NewCheckoutService(
			storeRepo, productRepo, orderRepo, couponService, orderProducer, logger),
		OrderService: service.NewOrderService(orderRepo, orderProducer, logger),
		dbDao:        dbDao,
		rdb:          rdb,
		producer:     orderProducer,
	}, nil
}

// NewCart 為一個購物階段建立購物車，初始化時從儲存層載入一次
func (a *ApplicationContext) NewCart(ctx context.Context, sessionID, storeID string) *service.CartService {
	return service.NewCartService(ctx, a.CartStorage, sessionID, storeID, a.Logger)
}

// Close 釋放連線資源
func (a *ApplicationContext) Close() error {
	if err := a.producer.Close(); err != nil {
		return err
	}
	if err := a.rdb.Close(); err != nil {
		return err
	}
	sqlDB, err := a.dbDao.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
