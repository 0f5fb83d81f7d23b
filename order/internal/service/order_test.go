package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"

	"github.com/Alturino/pharmacy/internal/constants"
	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/event"
	"github.com/Alturino/pharmacy/internal/infra"
	"github.com/Alturino/pharmacy/internal/metrics"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/order/pkg/request"
	"github.com/Alturino/pharmacy/order/pkg/response"
)

func createOrderRequest() request.CreateOrder {
	return request.CreateOrder{
		CustomerName:    "Amina",
		CustomerPhone:   "0550 00 00 00",
		CustomerAddress: "12 rue Didouche Mourad, Alger",
		Notes:           "Sonner deux fois",
		Items: []request.OrderItem{
			{ProductID: uuid.New(), ProductName: "A", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: uuid.New(), ProductName: "B", Quantity: 1, Price: decimal.RequireFromString("5.50")},
		},
		TotalAmount: decimal.RequireFromString("25.50"),
	}
}

func TestNewOrderParams(t *testing.T) {
	orderID := uuid.New()
	req := createOrderRequest()

	order, items := NewOrderParams(orderID, req)

	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, req.Notes, order.Notes)
	assert.True(t, req.TotalAmount.Equal(repository.DecimalFromNumeric(order.TotalAmount)))
	require.Len(t, items, 2)
	for i, item := range items {
		assert.Equal(t, orderID, item.OrderID)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, req.Items[i].ProductID, item.ProductID)
		assert.Equal(t, req.Items[i].Quantity, item.Quantity)
		assert.True(t, req.Items[i].Price.Equal(repository.DecimalFromNumeric(item.Price)))
	}
}

func TestCreateOrderWithoutItems(t *testing.T) {
	svc := NewOrderService(nil, nil, nil)
	req := createOrderRequest()
	req.Items = nil

	_, err := svc.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, inErrors.ErrEmptyOrderItems)
}

func setupContainers(t *testing.T) (*OrderService, *redis.Client) {
	t.Helper()
	c := context.Background()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("pharmacie_saidani"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed running postgres container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed terminating postgres container with error=%s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	require.NoError(t, err)
	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	require.NoError(t, err)
	pgConfig.AfterConnect = func(c context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, infra.Migrate(c, pool, "file://../../../migrations"))

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	require.NoError(t, err, "failed running redis container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Logf("failed terminating redis container with error=%s", err)
		}
	})
	redisConnStr, err := redisContainer.ConnectionString(c)
	require.NoError(t, err)
	redisOpt, err := redis.ParseURL(redisConnStr)
	require.NoError(t, err)
	client := redis.NewClient(redisOpt)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(c).Err())

	return NewOrderService(pool, repository.New(pool), client), client
}

func TestCreateOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	svc, client := setupContainers(t)

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pubsub := client.Subscribe(c, constants.ChannelOrderCreated)
	defer pubsub.Close()
	_, err := pubsub.Receive(c)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.OrdersCreated)
	req := createOrderRequest()
	created, err := svc.CreateOrder(c, req)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersCreated))

	msg, err := pubsub.ReceiveMessage(c)
	require.NoError(t, err)
	_, e, err := event.Decode(c, msg.Payload)
	require.NoError(t, err)
	published := response.Order{}
	require.NoError(t, json.Unmarshal(e.Payload, &published))
	assert.Equal(t, created.ID, published.ID)

	second, err := svc.CreateOrder(c, req)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)

	orders, err := svc.FindOrders(c)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Len(t, orders[1].Items, 2)
	assert.True(t, decimal.RequireFromString("25.50").Equal(orders[1].TotalAmount))
}
