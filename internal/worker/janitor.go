package worker

// Upload janitor: file writes and record writes are not transactionally
// coupled, so a request that fails between the two leaves a stored file no
// record points at. A background goroutine periodically reconciles the upload
// directories against the database and removes unreferenced files.

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/repository"
	"github.com/muhammadjayadi/larastore-management/internal/storage"

	"github.com/rs/zerolog/log"
)

const (
	janitorInterval = time.Hour
	// Files younger than this are left alone: they may belong to a request
	// still in flight.
	janitorMinAge = 24 * time.Hour
)

// JanitorConfig holds the janitor's dependencies.
type JanitorConfig struct {
	Categories repository.CategoryRepository
	Users      repository.UserRepository
	Uploads    *storage.DiskStore
}

// StartUploadJanitor launches the reconciliation goroutine. It respects the
// context for graceful shutdown.
func StartUploadJanitor(ctx context.Context, cfg JanitorConfig) {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()

		log.Info().Msg("upload_janitor: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("upload_janitor: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
}

func sweep(ctx context.Context, cfg JanitorConfig) {
	referenced, err := referencedPaths(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("upload_janitor: listing referenced paths")
		return
	}

	removed := 0
	for _, folder := range []string{storage.FolderCategoryImages, storage.FolderAvatars} {
		removed += sweepFolder(cfg.Uploads, folder, referenced)
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("upload_janitor: orphaned files removed")
	}
}

func referencedPaths(ctx context.Context, cfg JanitorConfig) (map[string]bool, error) {
	images, err := cfg.Categories.AllImagePaths(ctx)
	if err != nil {
		return nil, err
	}
	avatars, err := cfg.Users.AllAvatarPaths(ctx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]bool, len(images)+len(avatars))
	for _, p := range images {
		referenced[p] = true
	}
	for _, p := range avatars {
		referenced[p] = true
	}
	return referenced, nil
}

func sweepFolder(uploads *storage.DiskStore, folder string, referenced map[string]bool) int {
	root := uploads.Root()
	dir := filepath.Join(root, folder)
	cutoff := time.Now().Add(-janitorMinAge)

	removed := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if referenced[rel] {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			removed++
			log.Debug().Str("path", rel).Msg("upload_janitor: removed orphan")
		}
		return nil
	})
	return removed
}
