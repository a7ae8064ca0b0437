package userbus

import "github.com/sellerdesk/console/business/sdk/order"

// DefaultOrderBy represents the default way we should return data.
var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID      = "user_id"
	OrderByName    = "name"
	OrderByEmail   = "email"
	OrderByEnabled = "enabled"
)
