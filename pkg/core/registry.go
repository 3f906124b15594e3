package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Registry is the in-memory view of the location document.
// It is loaded once and every mutation is persisted before it returns.
type Registry struct {
	repo   Repository
	logger *slog.Logger

	mu  sync.RWMutex
	doc Document
}

// NewRegistry creates a Registry backed by repo. Call Load before use.
func NewRegistry(repo Repository, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{repo: repo, logger: logger}
}

// Load reads the document from the repository, replacing the in-memory state.
func (r *Registry) Load(ctx context.Context) error {
	doc, err := r.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()

	r.logger.Debug("registry loaded", "categories", len(doc.Categories))
	return nil
}

// Reload is Load under a name that reads better at call sites reacting to external edits.
func (r *Registry) Reload(ctx context.Context) error {
	return r.Load(ctx)
}

// Categories returns a copy of every category in document order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.doc.Categories))
	for i, c := range r.doc.Categories {
		out[i] = c.clone()
	}
	return out
}

// Category resolves a category by name, ignoring case.
func (r *Registry) Category(name string) (Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(name)
	if i < 0 {
		return Category{}, false
	}
	return r.doc.Categories[i].clone(), true
}

// Find returns the first entry named name across all categories, in category order.
func (r *Registry) Find(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.doc.Categories {
		if e, _, ok := c.Lookup(name); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Set stores text under name in an existing category.
// A name matching an existing entry case-insensitively overwrites it in place.
func (r *Registry) Set(ctx context.Context, category, name, text string) (Entry, error) {
	if strings.TrimSpace(name) == "" {
		return Entry{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ci := r.indexOf(category)
	if ci < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	next := r.doc.Categories[ci].clone()
	entry := Entry{Name: name, Text: text}
	if _, ei, ok := next.Lookup(name); ok {
		next.Entries[ei] = entry
	} else {
		next.Entries = append(next.Entries, entry)
	}

	if err := r.repo.SaveCategory(ctx, next); err != nil {
		return Entry{}, fmt.Errorf("failed to save category %q: %w", next.Name, err)
	}
	r.doc.Categories[ci] = next

	r.logger.Debug("location saved", "category", next.Name, "name", name)
	return entry, nil
}

// Remove deletes a single entry from an existing category.
func (r *Registry) Remove(ctx context.Context, category, name string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ci := r.indexOf(category)
	if ci < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	next := r.doc.Categories[ci].clone()
	removed, ei, ok := next.Lookup(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidLocation, name)
	}
	next.Entries = append(next.Entries[:ei], next.Entries[ei+1:]...)

	if err := r.repo.SaveCategory(ctx, next); err != nil {
		return Entry{}, fmt.Errorf("failed to save category %q: %w", next.Name, err)
	}
	r.doc.Categories[ci] = next

	r.logger.Debug("location removed", "category", next.Name, "name", removed.Name)
	return removed, nil
}

// AddCategory creates an empty category at the end of the document.
// Chat commands never create categories; this is an operator tool.
func (r *Registry) AddCategory(ctx context.Context, name string) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(name) >= 0 {
		return Category{}, fmt.Errorf("%w: %q", ErrCategoryExists, name)
	}

	c := Category{Name: name}
	if err := r.repo.SaveCategory(ctx, c); err != nil {
		return Category{}, fmt.Errorf("failed to save category %q: %w", name, err)
	}
	r.doc.Categories = append(r.doc.Categories, c)
	return c, nil
}

// Pin returns the current pin record.
func (r *Registry) Pin() (PinRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc.Pin.IsZero() {
		return PinRecord{}, ErrNoPin
	}
	return r.doc.Pin, nil
}

// SetPin replaces the pin record. Last writer wins.
func (r *Registry) SetPin(ctx context.Context, p PinRecord) error {
	if p.IsZero() {
		return errors.New("pin record requires a channel and a message")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.SavePin(ctx, p); err != nil {
		return fmt.Errorf("failed to save pin: %w", err)
	}
	r.doc.Pin = p
	return nil
}

// ClearPin forgets the pin record, e.g. after the pinned message was deleted
// by hand. Mutations stop refreshing a pin until a new one is created.
func (r *Registry) ClearPin(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.SavePin(ctx, PinRecord{}); err != nil {
		return fmt.Errorf("failed to clear pin: %w", err)
	}
	r.doc.Pin = PinRecord{}
	return nil
}

// indexOf must be called with r.mu held.
func (r *Registry) indexOf(name string) int {
	for i, c := range r.doc.Categories {
		if EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}
