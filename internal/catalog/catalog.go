package catalog

import (
	"context"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

// Query is one guidebook entry: an annotated SQL statement plus the
// typed runner that executes it against a store.
type Query struct {
	// ID is the entry's position in the guidebook, starting at 1.
	ID int

	// Slug is the stable name used by the CLI and the check suite.
	Slug string

	// Title is a one-line description for listings.
	Title string

	// Concepts names the SQL techniques the entry demonstrates.
	Concepts []string

	// Mutates marks entries whose Run changes the database.
	Mutates bool

	// Statement is the annotated SQL as printed by `sqlbook show`.
	Statement string

	// Run executes the entry and adapts its rows into a result set.
	Run func(ctx context.Context, st *store.Store) (*report.ResultSet, error)
}

// queries holds the catalog in guidebook order.
var queries = []Query{
	{
		ID:        1,
		Slug:      "top-electronics",
		Title:     "Five most expensive Electronics products",
		Concepts:  []string{"WHERE", "ORDER BY", "LIMIT"},
		Statement: topElectronicsSQL,
		Run:       runTopElectronics,
	},
	{
		ID:        2,
		Slug:      "customer-order-stats",
		Title:     "Per-customer order statistics over a spend floor",
		Concepts:  []string{"GROUP BY", "HAVING", "aggregate functions"},
		Statement: customerOrderStatsSQL,
		Run:       runCustomerOrderStats,
	},
	{
		ID:        3,
		Slug:      "orders-with-customers",
		Title:     "Orders joined to the customers who placed them",
		Concepts:  []string{"INNER JOIN"},
		Statement: ordersWithCustomersSQL,
		Run:       runOrdersWithCustomers,
	},
	{
		ID:        4,
		Slug:      "customer-order-counts",
		Title:     "Order count and spend for every customer",
		Concepts:  []string{"LEFT JOIN", "COALESCE", "GROUP BY"},
		Statement: customerOrderCountsSQL,
		Run:       runCustomerOrderCounts,
	},
	{
		ID:        5,
		Slug:      "order-line-details",
		Title:     "Line items joined across all four tables",
		Concepts:  []string{"multi-table JOIN", "computed columns"},
		Statement: orderLineDetailsSQL,
		Run:       runOrderLineDetails,
	},
	{
		ID:        6,
		Slug:      "customer-segments",
		Title:     "Customers segmented by lifetime spend",
		Concepts:  []string{"CASE", "LEFT JOIN", "GROUP BY"},
		Statement: customerSegmentsSQL,
		Run:       runCustomerSegments,
	},
	{
		ID:        7,
		Slug:      "price-ranks",
		Title:     "Price ranks within each category",
		Concepts:  []string{"RANK", "ROW_NUMBER", "PARTITION BY"},
		Statement: priceRanksSQL,
		Run:       runPriceRanks,
	},
	{
		ID:        8,
		Slug:      "monthly-sales",
		Title:     "Monthly order volume and revenue",
		Concepts:  []string{"CTE", "strftime", "conditional aggregation"},
		Statement: monthlySalesSQL,
		Run:       runMonthlySales,
	},
	{
		ID:        9,
		Slug:      "running-revenue",
		Title:     "Running revenue and three-order moving average",
		Concepts:  []string{"window frames", "SUM OVER", "AVG OVER"},
		Statement: runningRevenueSQL,
		Run:       runRunningRevenue,
	},
	{
		ID:        10,
		Slug:      "record-sale",
		Title:     "Record a five-unit sale of the wireless mouse",
		Concepts:  []string{"UPDATE"},
		Mutates:   true,
		Statement: recordSaleSQL,
		Run:       runRecordSale,
	},
	{
		ID:        11,
		Slug:      "product-watchlist",
		Title:     "Low-stock and high-value products in one list",
		Concepts:  []string{"UNION"},
		Statement: productWatchlistSQL,
		Run:       runProductWatchlist,
	},
}

// All returns the catalog in guidebook order.
// The returned slice is a copy; callers may reorder it freely.
func All() []Query {
	out := make([]Query, len(queries))
	copy(out, queries)
	return out
}

// BySlug returns the entry with the given slug.
func BySlug(slug string) (Query, bool) {
	for _, q := range queries {
		if q.Slug == slug {
			return q, true
		}
	}
	return Query{}, false
}

// ByID returns the entry at the given guidebook position.
func ByID(id int) (Query, bool) {
	for _, q := range queries {
		if q.ID == id {
			return q, true
		}
	}
	return Query{}, false
}
