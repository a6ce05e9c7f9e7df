package storage

import (
	"context"
	"fmt"

	"labstock/inventory"
)

// fakeBackend is an in-memory Backend used by the sync and store tests.
type fakeBackend struct {
	items         []inventory.Item
	users         []string
	notifications []string
	failAppend    bool
	calls         []string
}

func (f *fakeBackend) Items(context.Context) ([]inventory.Item, error) {
	out := make([]inventory.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) Users(context.Context) ([]string, error) {
	out := make([]string, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeBackend) AppendItem(_ context.Context, item inventory.Item) error {
	if f.failAppend {
		return fmt.Errorf("append rejected")
	}
	f.calls = append(f.calls, "append:"+item.PartNum)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeBackend) UpdateItem(_ context.Context, item inventory.Item) error {
	f.calls = append(f.calls, "update:"+item.PartNum)
	for i := range f.items {
		if f.items[i].PartNum == item.PartNum {
			f.items[i] = item
			return nil
		}
	}
	return fmt.Errorf("item %s not found", item.PartNum)
}

func (f *fakeBackend) DeleteItem(_ context.Context, partNum string) error {
	f.calls = append(f.calls, "delete:"+partNum)
	for i := range f.items {
		if f.items[i].PartNum == partNum {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) AppendUser(_ context.Context, username string) error {
	f.users = append(f.users, username)
	return nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, username string) error {
	for i := range f.users {
		if f.users[i] == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) AppendNotification(_ context.Context, partNum string) error {
	for _, n := range f.notifications {
		if n == partNum {
			return nil
		}
	}
	f.notifications = append(f.notifications, partNum)
	return nil
}

// fakeMirror is an in-memory MirrorStore.
type fakeMirror struct {
	items []inventory.Item
	users []string
	calls []string
}

func (f *fakeMirror) Items() ([]inventory.Item, error) {
	out := make([]inventory.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeMirror) Users() ([]string, error) {
	out := make([]string, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeMirror) InsertItem(item inventory.Item) error {
	f.calls = append(f.calls, "insert:"+item.PartNum)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeMirror) UpdateItem(item inventory.Item) error {
	f.calls = append(f.calls, "update:"+item.PartNum)
	for i := range f.items {
		if f.items[i].PartNum == item.PartNum {
			f.items[i] = item
			return nil
		}
	}
	return fmt.Errorf("mirror item %s not found", item.PartNum)
}

func (f *fakeMirror) DeleteItem(partNum string) error {
	f.calls = append(f.calls, "delete:"+partNum)
	for i := range f.items {
		if f.items[i].PartNum == partNum {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeMirror) InsertUser(username string) error {
	f.users = append(f.users, username)
	return nil
}

func (f *fakeMirror) DeleteUser(username string) error {
	for i := range f.users {
		if f.users[i] == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}
