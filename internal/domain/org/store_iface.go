package org

import "context"

type StoreAPI interface {
	Upsert(ctx context.Context, mapping Mapping) error
	ManagerFor(ctx context.Context, employeeID string) (string, bool, error)
	List(ctx context.Context) ([]Mapping, error)
}
