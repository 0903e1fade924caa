package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/lojify/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepoTestSuite struct {
	suite.Suite
	db        *gorm.DB
	orderRepo *OrderRepo
	storeRepo *StoreRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *OrderRepoTestSuite) SetupSuite() {
	conn, err := GetDbConn("storefront", "localhost", "5432", "postgres", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(conn)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = conn
	suite.orderRepo = NewOrderRepo(dbDao)
	suite.storeRepo = NewStoreRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *OrderRepoTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM order_items")
	suite.db.Exec("DELETE FROM orders")
	suite.db.Exec("DELETE FROM stores")
}

// TearDownSuite 在測試套件結束後執行
func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) makeOrder(id, storeID string) (*model.Order, []model.OrderItem) {
	order := &model.Order{
		OrderID:        id,
		StoreID:        storeID,
		CustomerName:   "Maria Silva",
		CustomerEmail:  "maria@email.com",
		AddressLine1:   "Rua das Flores 123",
		City:           "São Paulo",
		State:          "SP",
		ZipCode:        "01000-000",
		Status:         model.OrderStatusPending,
		TotalAmount:    decimal.NewFromFloat(115.00),
		ShippingAmount: decimal.NewFromFloat(15.00),
		DiscountAmount: decimal.Zero,
		PaymentMethod:  "pix",
	}
	items := []model.OrderItem{
		{
			LineKey:         "p1|Tamanho=M",
			ProductID:       "p1",
			ProductName:     "Camiseta",
			UnitPrice:       decimal.NewFromFloat(50.00),
			Quantity:        2,
			TotalPrice:      decimal.NewFromFloat(100.00),
			SelectedOptions: map[string]string{"Tamanho": "M"},
		},
	}
	return order, items
}

func (suite *OrderRepoTestSuite) TestCreateOrderWithItems() {
	ctx := context.Background()
	order, items := suite.makeOrder("o1", "store-1")

	err := suite.orderRepo.CreateOrderWithItems(ctx, order, items)
	assert.NoError(suite.T(), err)

	got, err := suite.orderRepo.GetOrderByID(ctx, "o1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.OrderStatusPending, got.Status)
	assert.True(suite.T(), got.TotalAmount.Equal(decimal.NewFromFloat(115.00)))
	assert.Len(suite.T(), got.Items, 1)
	assert.Equal(suite.T(), "Camiseta", got.Items[0].ProductName)
	assert.Equal(suite.T(), map[string]string{"Tamanho": "M"}, got.Items[0].SelectedOptions)
}

func (suite *OrderRepoTestSuite) TestCreateOrderWithoutItemsRejected() {
	ctx := context.Background()
	order, _ := suite.makeOrder("o1", "store-1")

	// 不允許建立沒有行項目的訂單主檔
	err := suite.orderRepo.CreateOrderWithItems(ctx, order, nil)
	assert.Error(suite.T(), err)

	_, err = suite.orderRepo.GetOrderByID(ctx, "o1")
	assert.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestCreateOrderRollbackOnItemFailure() {
	ctx := context.Background()
	order, items := suite.makeOrder("o1", "store-1")

	// 第二行主鍵衝突 -> 整個交易回滾，不留孤兒主檔
	items = append(items, items[0])
	err := suite.orderRepo.CreateOrderWithItems(ctx, order, items)
	assert.Error(suite.T(), err)

	_, err = suite.orderRepo.GetOrderByID(ctx, "o1")
	assert.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus() {
	ctx := context.Background()
	order, items := suite.makeOrder("o1", "store-1")
	require.NoError(suite.T(), suite.orderRepo.CreateOrderWithItems(ctx, order, items))

	err := suite.orderRepo.UpdateOrderStatus(ctx, "o1", model.OrderStatusPaid)
	assert.NoError(suite.T(), err)

	got, _ := suite.orderRepo.GetOrderByID(ctx, "o1")
	assert.Equal(suite.T(), model.OrderStatusPaid, got.Status)

	// 不存在的訂單
	err = suite.orderRepo.UpdateOrderStatus(ctx, "no-such", model.OrderStatusPaid)
	assert.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestGetOrdersByStoreIsolation() {
	ctx := context.Background()

	for i, storeID := range []string{"store-a", "store-a", "store-b"} {
		order, items := suite.makeOrder(fmt.Sprintf("o%d", i+1), storeID)
		require.NoError(suite.T(), suite.orderRepo.CreateOrderWithItems(ctx, order, items))
	}

	ordersA, err := suite.orderRepo.GetOrdersByStore(ctx, "store-a")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), ordersA, 2)

	ordersB, err := suite.orderRepo.GetOrdersByStore(ctx, "store-b")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), ordersB, 1)
}

func (suite *OrderRepoTestSuite) TestGetOrdersPaginated() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		order, items := suite.makeOrder(fmt.Sprintf("o%d", i+1), "store-a")
		require.NoError(suite.T(), suite.orderRepo.CreateOrderWithItems(ctx, order, items))
	}

	orders, total, err := suite.orderRepo.GetOrdersPaginated(ctx, "store-a", 1, 2)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), total)
	assert.Len(suite.T(), orders, 2)

	orders, _, err = suite.orderRepo.GetOrdersPaginated(ctx, "store-a", 3, 2)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
}
