package editor

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/homey/internal/domain"
	"github.com/MrSnakeDoc/homey/internal/logger"
)

// Persister writes the canonical configuration text to durable storage
type Persister interface {
	Write(data []byte) error
}

// Committer installs a validated document as the live configuration
type Committer interface {
	Replace(doc domain.Document)
}

// Publisher receives successfully saved documents (e.g. a Redis mirror).
// Publishing is best effort and never fails a save.
type Publisher interface {
	PublishConfig(ctx context.Context, canonical []byte, savedAt time.Time) error
}

// Workflow turns a raw submission into a committed configuration
type Workflow struct {
	persister Persister
	committer Committer
	publisher Publisher
	logger    logger.Logger
	encode    func(domain.Document) ([]byte, error)

	// saveMu serializes persist+commit+publish so the file, the store and
	// the mirror always hold the same winner when saves race.
	saveMu sync.Mutex
}

// NewWorkflow creates a save workflow
func NewWorkflow(persister Persister, committer Committer, log logger.Logger) *Workflow {
	return &Workflow{
		persister: persister,
		committer: committer,
		logger:    log,
		encode:    domain.Canonical,
	}
}

// WithPublisher sets the optional publisher notified after each commit
func (w *Workflow) WithPublisher(p Publisher) *Workflow {
	w.publisher = p
	return w
}

// Save validates, persists and commits the submitted configuration text.
//
// On success the committed document is returned. Any failure is a *SaveError
// and leaves both the file and the live configuration untouched.
func (w *Workflow) Save(ctx context.Context, submitted string) (domain.Document, error) {
	doc, err := domain.Parse([]byte(submitted))
	if err != nil {
		w.logger.Info("config save rejected",
			logger.String("kind", InvalidInput.String()),
			logger.Error(err))
		return domain.Document{}, &SaveError{Kind: InvalidInput, Submitted: submitted, Err: err}
	}

	canonical, err := w.encode(doc)
	if err != nil {
		w.logger.Error("config save failed",
			logger.String("kind", SerializationError.String()),
			logger.Error(err))
		return domain.Document{}, &SaveError{Kind: SerializationError, Submitted: submitted, Err: err}
	}

	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	if err := w.persister.Write(canonical); err != nil {
		w.logger.Error("config save failed",
			logger.String("kind", PersistenceError.String()),
			logger.Error(err))
		return domain.Document{}, &SaveError{Kind: PersistenceError, Submitted: submitted, Err: err}
	}
	// Commit the parsed document, not a re-read of the file.
	w.committer.Replace(doc)

	w.logger.Info("config saved",
		logger.String("title", doc.Title),
		logger.Int("links", len(doc.Links)),
		logger.Int("bytes", len(canonical)))

	// Published under saveMu so the mirror sees saves in commit order.
	if w.publisher != nil {
		if err := w.publisher.PublishConfig(ctx, canonical, time.Now()); err != nil {
			w.logger.Warn("failed to publish config mirror",
				logger.Error(err))
		}
	}

	return doc, nil
}
