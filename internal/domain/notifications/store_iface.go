package notifications

import "context"

type StoreAPI interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
}
