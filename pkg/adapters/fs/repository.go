package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/locbot/pkg/core"
)

// Keys of the persisted document.
const (
	LocationsKey  = "locations"
	PinIDKey      = "pinId"
	PinChannelKey = "pinChannel"
)

// Repository implements core.Repository on top of a Store.
type Repository struct {
	store  *Store
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastReload    *time.Time
}

// Config holds the configuration for the file-backed repository.
type Config struct {
	Path   string
	Logger *slog.Logger
	// Debounce coalesces bursts of filesystem events. Zero means 50ms.
	Debounce time.Duration
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce == 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Repository{
		store:  NewStore(config.Path),
		config: config,
	}
}

// Store exposes the underlying key-path store.
func (r *Repository) Store() *Store {
	return r.store
}

// Initialize ensures the backing file exists.
func (r *Repository) Initialize(ctx context.Context) error {
	return r.store.Initialize(ctx)
}

// Load decodes the document, keeping the on-disk order of categories and entries.
func (r *Repository) Load(ctx context.Context) (core.Document, error) {
	res, err := r.store.Root(ctx)
	if err != nil {
		return core.Document{}, err
	}

	var doc core.Document
	locations := res.Get(LocationsKey)
	if locations.Exists() && !locations.IsObject() {
		return core.Document{}, fmt.Errorf("%s must be an object, got %s", LocationsKey, locations.Type)
	}

	locations.ForEach(func(key, value gjson.Result) bool {
		cat := core.Category{Name: key.String()}
		value.ForEach(func(name, text gjson.Result) bool {
			cat.Entries = append(cat.Entries, core.Entry{Name: name.String(), Text: text.String()})
			return true
		})
		doc.Categories = append(doc.Categories, cat)
		return true
	})

	doc.Pin = core.PinRecord{
		ChannelID: res.Get(PinChannelKey).String(),
		MessageID: res.Get(PinIDKey).String(),
	}

	r.mu.Lock()
	now := time.Now()
	r.lastReload = &now
	r.mu.Unlock()

	return doc, nil
}

// SaveCategory rewrites one category subtree in entry order.
func (r *Repository) SaveCategory(ctx context.Context, c core.Category) error {
	entries := orderedmap.New[string, string]()
	for _, e := range c.Entries {
		entries.Set(e.Name, e.Text)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode category %q: %w", c.Name, err)
	}

	// A missing parent would let a numeric category name create an array.
	res, err := r.store.Result(ctx, LocationsKey)
	if err != nil {
		return err
	}
	if !res.Exists() {
		if err := r.store.SetRaw(ctx, LocationsKey, []byte("{}")); err != nil {
			return err
		}
	}

	return r.store.SetRaw(ctx, Path(LocationsKey, c.Name), raw)
}

// SavePin stores the pin message id and channel id, or deletes both keys
// for a zero record.
func (r *Repository) SavePin(ctx context.Context, p core.PinRecord) error {
	if p.IsZero() {
		if err := r.store.Delete(ctx, PinIDKey); err != nil {
			return err
		}
		return r.store.Delete(ctx, PinChannelKey)
	}
	if _, err := r.store.Set(ctx, PinIDKey, p.MessageID); err != nil {
		return err
	}
	if _, err := r.store.Set(ctx, PinChannelKey, p.ChannelID); err != nil {
		return err
	}
	return nil
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
