// Package storage provides the spreadsheet backend, the local
// relational mirror, and the synchronization between them. The
// spreadsheet is the system of record; the mirror is refreshed from it.
package storage

import (
	"context"

	"labstock/inventory"
)

// Backend is the system of record for items and users.
type Backend interface {
	Items(ctx context.Context) ([]inventory.Item, error)
	Users(ctx context.Context) ([]string, error)

	AppendItem(ctx context.Context, item inventory.Item) error
	UpdateItem(ctx context.Context, item inventory.Item) error
	DeleteItem(ctx context.Context, partNum string) error

	AppendUser(ctx context.Context, username string) error
	DeleteUser(ctx context.Context, username string) error

	AppendNotification(ctx context.Context, partNum string) error
}

// MirrorStore is the local relational copy of the backend.
type MirrorStore interface {
	Items() ([]inventory.Item, error)
	Users() ([]string, error)

	InsertItem(item inventory.Item) error
	UpdateItem(item inventory.Item) error
	DeleteItem(partNum string) error

	InsertUser(username string) error
	DeleteUser(username string) error
}
