package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/internal/constants"
	inErrors "github.com/Alturino/pharmacy/internal/errors"
	"github.com/Alturino/pharmacy/internal/event"
	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/internal/metrics"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/repository"
	"github.com/Alturino/pharmacy/order/internal/otel"
	"github.com/Alturino/pharmacy/order/pkg/request"
	"github.com/Alturino/pharmacy/order/pkg/response"
)

const StatusPending = "pending"

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) *OrderService {
	return &OrderService{pool: pool, queries: queries, cache: cache}
}

// NewOrderParams maps a validated request to the rows written for one order.
func NewOrderParams(
	orderID uuid.UUID,
	param request.CreateOrder,
) (repository.InsertOrderParams, []repository.InsertOrderItemParams) {
	order := repository.InsertOrderParams{
		ID:              orderID,
		CustomerName:    param.CustomerName,
		CustomerPhone:   param.CustomerPhone,
		CustomerAddress: param.CustomerAddress,
		Notes:           param.Notes,
		TotalAmount:     repository.NumericFromDecimal(param.TotalAmount),
		Status:          StatusPending,
	}
	items := make([]repository.InsertOrderItemParams, 0, len(param.Items))
	for _, item := range param.Items {
		items = append(items, repository.InsertOrderItemParams{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       repository.NumericFromDecimal(item.Price),
		})
	}
	return order, items
}

func (s *OrderService) CreateOrder(
	c context.Context,
	param request.CreateOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "OrderService CreateOrder").
		Logger()

	if len(param.Items) == 0 {
		err := fmt.Errorf("failed creating order with error=%w", inErrors.ErrEmptyOrderItems)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	orderID := uuid.New()
	logger = logger.With().Str(log.KeyOrderID, orderID.String()).Logger()
	orderParams, itemParams := NewOrderParams(orderID, param)

	logger = logger.With().Str(log.KeyProcess, "starting transaction").Logger()
	logger.Trace().Msg("starting transaction")
	tx, err := s.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed starting transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msgf("failed rolling back transaction with error=%s", err.Error())
		}
	}()
	qtx := s.queries.WithTx(tx)
	logger.Trace().Msg("started transaction")

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Trace().Msg("inserting order")
	span.AddEvent("inserting order")
	order, err := qtx.InsertOrder(c, orderParams)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Trace().Msg("inserting order items")
	span.AddEvent("inserting order items")
	copied, err := qtx.InsertOrderItems(c, itemParams)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Int64(log.KeyOrderItems, copied).Msg("inserted order items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("committed transaction")
	metrics.OrdersCreated.Inc()

	items := make([]response.OrderItem, 0, len(param.Items))
	for _, item := range param.Items {
		items = append(items, response.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	res := order.Response(items)

	logger = logger.With().Str(log.KeyProcess, "publishing order created").Logger()
	c = logger.WithContext(c)
	if err := event.Publish(c, s.cache, constants.ChannelOrderCreated, res); err != nil {
		err = fmt.Errorf("failed publishing order created with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger.Info().Str(log.KeyTotalAmount, res.TotalAmount.String()).Msg("created order")
	return res, nil
}

func (s *OrderService) FindOrders(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Trace().Msg("finding orders")
	rows, err := s.queries.FindOrders(c)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "mapping orders").Logger()
	orders := make([]response.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping order id=%s with error=%w", row.ID.String(), err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		orders = append(orders, order)
	}
	logger.Info().Int(log.KeyOrders, len(orders)).Msg("found orders")

	return orders, nil
}
