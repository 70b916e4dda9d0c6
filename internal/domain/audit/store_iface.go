package audit

import "context"

type StoreAPI interface {
	Create(ctx context.Context, event Event) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error)
}
