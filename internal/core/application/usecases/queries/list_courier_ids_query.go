package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrListCourierIDsQueryIsNotConstructed = errors.New(
	"ListCourierIDsQuery must be created via NewListCourierIDsQuery constructor",
)

// ListCourierIDsQuery retrieves the identifiers of every registered
// courier. The assignment sweep feeds on it.
type ListCourierIDsQuery struct {
	guard guard.ConstructorGuard
}

// NewListCourierIDsQuery creates a query for the full courier id list.
func NewListCourierIDsQuery() ListCourierIDsQuery {
	return ListCourierIDsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListCourierIDsQuery) Validate() error {
	return q.guard.Validate(ErrListCourierIDsQueryIsNotConstructed)
}
