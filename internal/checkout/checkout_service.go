package checkout

import (
	"context"
	"fmt"
	"time"

	"marketgo/internal/cart"
	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/utils"
)

// Service reconciles a cart into order rows. The cart engine stays the
// source of truth for items and totals; checkout snapshots both into the
// orders and order_items tables and then empties the cart.
type Service struct {
	db       dataservice.Store
	notifier notify.Notifier
}

// NewService creates a new checkout service instance
func NewService(db dataservice.Store, notifier notify.Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// Summary aggregates a user's marketplace activity for the dashboard
type Summary struct {
	Purchases  int     `json:"purchases"`
	Sales      int     `json:"sales"`
	TotalSpent float64 `json:"total_spent"`
}

// Checkout converts the cart into an order. Rejects an empty cart; on
// success the cart is cleared and the order with its totals snapshot is
// returned.
func (s *Service) Checkout(ctx context.Context, buyerID string, engine *cart.Engine) (models.Order, error) {
	if buyerID == "" {
		return models.Order{}, fmt.Errorf("service: %w - empty buyer ID", marketerrors.ErrInvalidInput)
	}

	items := engine.Items()
	if len(items) == 0 {
		return models.Order{}, fmt.Errorf("service: %w", marketerrors.ErrEmptyCart)
	}
	totals := engine.Totals()

	order := models.Order{
		OrderID:    utils.GenerateID(),
		BuyerID:    buyerID,
		Subtotal:   totals.Subtotal,
		ServiceFee: totals.ServiceFee,
		Total:      totals.Total,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.db.Insert(ctx, dataservice.TableOrders, orderToRow(order)); err != nil {
		return models.Order{}, fmt.Errorf("service: failed to create order: %w", err)
	}

	for _, item := range items {
		row := dataservice.Row{
			"order_id":   order.OrderID,
			"product_id": item.ID,
			"title":      item.Title,
			"price":      item.Price,
			"seller":     item.Seller,
			"quantity":   item.Quantity,
		}
		if err := s.db.Insert(ctx, dataservice.TableOrderItems, row); err != nil {
			return models.Order{}, fmt.Errorf("service: failed to record order item %s: %w", item.ID, err)
		}
	}

	engine.Clear(ctx)
	s.notifier.Notify(fmt.Sprintf("Order placed - total %.2f", order.Total), notify.SeveritySuccess)
	return order, nil
}

// OrdersForBuyer returns a user's purchases, newest first
func (s *Service) OrdersForBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("service: %w - empty buyer ID", marketerrors.ErrInvalidInput)
	}

	rows, err := s.db.Select(ctx, dataservice.TableOrders, dataservice.Filter{"buyer_id": buyerID},
		&dataservice.Order{Column: "created_at", Descending: true})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders for %s: %w", buyerID, err)
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row))
	}
	return orders, nil
}

// OrderItems returns the purchased lines of one order
func (s *Service) OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := s.db.Select(ctx, dataservice.TableOrderItems, dataservice.Filter{"order_id": orderID}, nil)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list items for order %s: %w", orderID, err)
	}

	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.OrderItem{
			OrderID:   row.String("order_id"),
			ProductID: row.String("product_id"),
			Title:     row.String("title"),
			Price:     row.Float("price"),
			Seller:    row.String("seller"),
			Quantity:  row.Int("quantity"),
		})
	}
	return items, nil
}

// DashboardSummary counts a user's purchases and, by seller name, sales
func (s *Service) DashboardSummary(ctx context.Context, buyerID, sellerName string) (Summary, error) {
	orders, err := s.OrdersForBuyer(ctx, buyerID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Purchases: len(orders)}
	for _, order := range orders {
		summary.TotalSpent += order.Total
	}

	if sellerName != "" {
		soldRows, err := s.db.Select(ctx, dataservice.TableOrderItems, dataservice.Filter{"seller": sellerName}, nil)
		if err != nil {
			return Summary{}, fmt.Errorf("service: failed to count sales for %s: %w", sellerName, err)
		}
		summary.Sales = len(soldRows)
	}

	return summary, nil
}

func orderToRow(order models.Order) dataservice.Row {
	return dataservice.Row{
		"order_id":    order.OrderID,
		"buyer_id":    order.BuyerID,
		"subtotal":    order.Subtotal,
		"service_fee": order.ServiceFee,
		"total":       order.Total,
		"created_at":  order.CreatedAt,
	}
}

func rowToOrder(row dataservice.Row) models.Order {
	return models.Order{
		OrderID:    row.String("order_id"),
		BuyerID:    row.String("buyer_id"),
		Subtotal:   row.Float("subtotal"),
		ServiceFee: row.Float("service_fee"),
		Total:      row.Float("total"),
		CreatedAt:  row.Time("created_at"),
	}
}
