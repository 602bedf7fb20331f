// Package ports defines the contracts between the delivery core and its
// infrastructure: repositories, the unit of work, logical locks and the
// domain event publisher. Adapters under internal/adapters implement them.
package ports
