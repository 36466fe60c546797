// File: internal/domain/ports/adapter/homework.go
package adapter

import "context"

// HomeworkAPI fetches homework statuses updated since fromDate (unix seconds).
// The body is returned decoded but unvalidated.
type HomeworkAPI interface {
	GetStatuses(ctx context.Context, fromDate int64) (any, error)
}
