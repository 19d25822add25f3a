package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/ghprofile/internal/core"
	"github.com/inovacc/ghprofile/internal/encoding"
	"go.etcd.io/bbolt"
)

const (
	bucketRuns = "runs" // key: started-at + "/" + run ID -> Run JSON

	keyTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Run is one finished invocation. Only outcomes are stored; repository
// records never are.
type Run struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	User           string    `json:"user"`
	Repositories   int       `json:"repositories"`
	Pages          int       `json:"pages"`
	Forks          int       `json:"forks"`
	UnknownParents int       `json:"unknown_parents"`
	Partial        bool      `json:"partial"`
	DryRun         bool      `json:"dry_run"`
	Changed        bool      `json:"changed"`
	Committed      bool      `json:"committed"`
	Commit         string    `json:"commit,omitempty"`
	Pushed         bool      `json:"pushed"`
	ErrorKind      string    `json:"error_kind,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error
func (r Run) Succeeded() bool {
	return r.Error == ""
}

// NewRun fills a Run from a pipeline result and its error
func NewRun(started time.Time, result *core.RunResult, runErr error) *Run {
	run := &Run{
		StartedAt:  started.UTC(),
		FinishedAt: time.Now().UTC(),
	}

	if result != nil && result.Document != nil {
		s := result.Document.Summary
		run.User = s.User
		run.Repositories = s.Repositories
		run.Pages = s.Pages
		run.Forks = s.Forks
		run.UnknownParents = s.UnknownParents
		run.Partial = s.Partial
	}

	if result != nil && result.Publish != nil {
		run.Changed = result.Publish.Changed
		run.Committed = result.Publish.Committed
		run.Commit = result.Publish.Commit
		run.Pushed = result.Publish.Pushed
	}

	if runErr != nil {
		run.ErrorKind = core.KindOf(runErr).String()
		run.Error = runErr.Error()
	}

	return run
}

// History is an append-only ledger of runs stored in bbolt
type History struct {
	db *bbolt.DB
}

// OpenHistory opens or creates the ledger at path
func OpenHistory(path string) (*History, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRuns))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &History{db: db}, nil
}

// Close releases the database file
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends run, assigning an ID when it has none
func (h *History) Record(run *Run) error {
	if run == nil {
		return errors.New("run is required")
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	data, err := encoding.ToJSON(run)
	if err != nil {
		return err
	}

	key := run.StartedAt.UTC().Format(keyTimeLayout) + "/" + run.ID

	return h.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRuns)).Put([]byte(key), data)
	})
}

// Recent returns up to limit runs, newest first. limit <= 0 returns all.
func (h *History) Recent(limit int) ([]Run, error) {
	runs := make([]Run, 0)

	err := h.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketRuns)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			run, err := encoding.ParseJSON[Run](v)
			if err != nil {
				return fmt.Errorf("corrupt history entry %s: %w", k, err)
			}

			runs = append(runs, *run)

			if limit > 0 && len(runs) >= limit {
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
