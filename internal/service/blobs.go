package service

import (
	"context"
	"log/slog"

	"github.com/vbonduro/fishedex/internal/photostore"
)

// removeBlobs deletes image payloads whose rows are already gone. Failures
// leave an orphaned file, so they are logged and never returned.
func removeBlobs(ctx context.Context, blobs photostore.PhotoStore, logger *slog.Logger, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := blobs.Delete(ctx, key); err != nil {
			logger.Error("failed to delete image payload", "storage_key", key, "error", err)
		}
	}
}
