package job

import (
	"context"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/bookpost/internal/storage"
	"github.com/emrgen/bookpost/internal/store"
	"github.com/sirupsen/logrus"
)

// orphanMinAge keeps the cleaner away from images of uploads that are
// still in flight (saved before the post row exists).
const orphanMinAge = time.Hour

// MediaCleaner sweeps stored page images that no post references,
// left behind when an upload fails after the image write.
type MediaCleaner struct {
	schedule string
	store    store.Store
	images   storage.Store
}

// NewMediaCleaner creates a new MediaCleaner with the given cron schedule.
func NewMediaCleaner(schedule string, store store.Store, images storage.Store) *MediaCleaner {
	return &MediaCleaner{
		schedule: schedule,
		store:    store,
		images:   images,
	}
}

func (c *MediaCleaner) Schedule() string {
	return c.schedule
}

func (c *MediaCleaner) Run() {
	ctx := context.Background()

	refs, err := c.images.List(ctx)
	if err != nil {
		logrus.Errorf("media cleaner: error listing images: %v", err)
		return
	}

	posts, err := c.store.ListPosts(ctx)
	if err != nil {
		logrus.Errorf("media cleaner: error listing posts: %v", err)
		return
	}

	referenced := goset.NewSet[string]()
	for _, post := range posts {
		if post.ImageRef != "" {
			referenced.Add(post.ImageRef)
		}
	}

	removed := 0
	for _, ref := range refs {
		if referenced.Contains(ref) {
			continue
		}

		modTime, err := c.images.ModTime(ctx, ref)
		if err != nil || time.Since(modTime) < orphanMinAge {
			continue
		}

		if err := c.images.Delete(ctx, ref); err != nil {
			logrus.Errorf("media cleaner: error removing %s: %v", ref, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logrus.Infof("media cleaner removed %d orphaned images", removed)
	}
}
