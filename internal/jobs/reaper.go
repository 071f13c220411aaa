package jobs

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"questlab.io/studiosite/internal/modules/resume/repository"
	"questlab.io/studiosite/pkg/storage"
)

// Objects younger than this are never reaped. A submission in flight may
// have uploaded its object before its row is committed.
const reapGrace = time.Hour

// ResumeReaper deletes stored resume objects that no submission row
// references anymore. Orphans appear when a row insert fails after upload or
// when an object delete fails after a row delete.
type ResumeReaper struct {
	repo  repository.ResumeRepository
	store storage.ObjectStorage
}

func NewResumeReaper(repo repository.ResumeRepository, store storage.ObjectStorage) *ResumeReaper {
	return &ResumeReaper{repo: repo, store: store}
}

// Schedule registers the reaper to run daily at 03:00.
func (r *ResumeReaper) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := r.Run(ctx); err != nil {
			log.Printf("[reaper] run failed: %v", err)
		}
	})
	return err
}

func (r *ResumeReaper) Run(ctx context.Context) error {
	stored, err := r.store.ListKeys(ctx, "resumes/")
	if err != nil {
		return err
	}

	referenced, err := r.repo.ReferencedKeys(ctx)
	if err != nil {
		return err
	}

	live := make(map[string]bool, len(referenced))
	for _, key := range referenced {
		live[key] = true
	}

	cutoff := time.Now().Add(-reapGrace)
	var orphans []string
	for _, key := range stored {
		if !live[key] && uploadedAt(key).Before(cutoff) {
			orphans = append(orphans, key)
		}
	}
	if len(orphans) == 0 {
		return nil
	}

	if err := r.store.DeleteMany(ctx, orphans); err != nil {
		return err
	}
	log.Printf("[reaper] removed %d orphaned resume objects", len(orphans))
	return nil
}

// uploadedAt recovers the upload time from the key's unix-nano prefix
// ("resumes/<nanos>-<name>"). Keys without a parseable prefix are treated as
// just uploaded, so they are never deleted.
func uploadedAt(key string) time.Time {
	base := key[strings.LastIndex(key, "/")+1:]
	prefix, _, ok := strings.Cut(base, "-")
	if !ok {
		return time.Now()
	}
	nanos, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return time.Now()
	}
	return time.Unix(0, nanos)
}
