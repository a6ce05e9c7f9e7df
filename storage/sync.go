package storage

import (
	"context"
	"fmt"

	"labstock/internal/logger"
)

// SyncMirror makes the mirror match the backend. The backend is the
// source of truth: items and users missing from the mirror are
// inserted, items whose fields differ are updated, and mirror rows
// absent from the backend are deleted. Last sync wins.
func SyncMirror(ctx context.Context, backend Backend, mirror MirrorStore, log logger.Logger) error {
	backendItems, err := backend.Items(ctx)
	if err != nil {
		return fmt.Errorf("sync: failed to fetch backend items: %w", err)
	}
	backendUsers, err := backend.Users(ctx)
	if err != nil {
		return fmt.Errorf("sync: failed to fetch backend users: %w", err)
	}
	mirrorItems, err := mirror.Items()
	if err != nil {
		return fmt.Errorf("sync: failed to fetch mirror items: %w", err)
	}
	mirrorUsers, err := mirror.Users()
	if err != nil {
		return fmt.Errorf("sync: failed to fetch mirror users: %w", err)
	}

	mirrorByPart := make(map[string]int, len(mirrorItems))
	for i, item := range mirrorItems {
		mirrorByPart[item.PartNum] = i
	}
	backendParts := make(map[string]struct{}, len(backendItems))

	added, updated, removed := 0, 0, 0
	for _, item := range backendItems {
		backendParts[item.PartNum] = struct{}{}

		idx, exists := mirrorByPart[item.PartNum]
		if !exists {
			if err := mirror.InsertItem(item); err != nil {
				return err
			}
			added++
			continue
		}
		if mirrorItems[idx] == item {
			continue
		}
		if err := mirror.UpdateItem(item); err != nil {
			return err
		}
		updated++
	}

	for _, item := range mirrorItems {
		if _, ok := backendParts[item.PartNum]; ok {
			continue
		}
		if err := mirror.DeleteItem(item.PartNum); err != nil {
			return err
		}
		removed++
	}

	backendUserSet := make(map[string]struct{}, len(backendUsers))
	mirrorUserSet := make(map[string]struct{}, len(mirrorUsers))
	for _, u := range mirrorUsers {
		mirrorUserSet[u] = struct{}{}
	}

	usersAdded, usersRemoved := 0, 0
	for _, u := range backendUsers {
		backendUserSet[u] = struct{}{}
		if _, ok := mirrorUserSet[u]; ok {
			continue
		}
		if err := mirror.InsertUser(u); err != nil {
			return err
		}
		usersAdded++
	}
	for _, u := range mirrorUsers {
		if _, ok := backendUserSet[u]; ok {
			continue
		}
		if err := mirror.DeleteUser(u); err != nil {
			return err
		}
		usersRemoved++
	}

	log.Info("Sync", "mirror synchronized", map[string]interface{}{
		"items_added":   added,
		"items_updated": updated,
		"items_removed": removed,
		"users_added":   usersAdded,
		"users_removed": usersRemoved,
	})
	return nil
}
