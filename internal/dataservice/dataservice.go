package dataservice

import "context"

// Table names of the hosted relational data service
const (
	TableProducts      = "products"
	TableAuctions      = "auctions"
	TableBids          = "bids"
	TableMessages      = "messages"
	TableNotifications = "notifications"
	TableOrders        = "orders"
	TableOrderItems    = "order_items"
	TableProfiles      = "profiles"
)

// Filter is an equality filter: every listed column must equal its value
type Filter map[string]any

// Order describes the sort column for a Select
type Order struct {
	Column     string
	Descending bool
}

// Row is a single table row keyed by column name
type Row map[string]any

// Store defines the table-scoped query/command interface of the data
// service. All filters are equality-based; Select results are ordered
// when an Order is given.
type Store interface {
	Select(ctx context.Context, table string, filter Filter, order *Order) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) error
	Update(ctx context.Context, table string, filter Filter, patch Row) (int64, error)
	Delete(ctx context.Context, table string, filter Filter) (int64, error)
}
