package champions

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/louisbranch/riftscout/internal/platform/timeouts"
	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	"golang.org/x/sync/singleflight"
)

// Source provides champion tables from Data Dragon.
type Source interface {
	LatestVersion(ctx context.Context) (string, error)
	Champions(ctx context.Context, version, language string) ([]ddragon.Champion, error)
}

// Store persists tables across restarts.
type Store interface {
	LoadTable(ctx context.Context, version, language string) ([]ddragon.Champion, bool, error)
	SaveTable(ctx context.Context, version, language string, champions []ddragon.Champion) error
}

// Catalog memoizes one Table per language for the life of the process.
// Tables are never evicted; a failed load is not cached.
type Catalog struct {
	source          Source
	store           Store
	defaultLanguage string

	mu     sync.RWMutex
	tables map[string]*Table
	group  singleflight.Group
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStore persists loaded tables and reads them back before downloading.
func WithStore(store Store) Option {
	return func(c *Catalog) { c.store = store }
}

// WithDefaultLanguage sets the language used for empty requests.
func WithDefaultLanguage(language string) Option {
	return func(c *Catalog) { c.defaultLanguage = language }
}

// NewCatalog returns an empty catalog backed by source.
func NewCatalog(source Source, opts ...Option) *Catalog {
	c := &Catalog{
		source:          source,
		defaultLanguage: ddragon.DefaultLanguage,
		tables:          map[string]*Table{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultLanguage returns the language used for empty requests.
func (c *Catalog) DefaultLanguage() string { return c.defaultLanguage }

// Table returns the table for language, loading it on first use. Concurrent
// first requests for one language share a single load.
func (c *Catalog) Table(ctx context.Context, language string) (*Table, error) {
	lang, err := ddragon.NormalizeLanguage(language, c.defaultLanguage)
	if err != nil {
		return nil, err
	}
	if table, ok := c.cached(lang); ok {
		return table, nil
	}

	// The load outlives any single caller; each caller stops waiting on its
	// own cancellation.
	loadCtx := context.WithoutCancel(ctx)
	flight := c.group.DoChan(lang, func() (any, error) {
		if table, ok := c.cached(lang); ok {
			return table, nil
		}
		runCtx, cancel := context.WithTimeout(loadCtx, timeouts.CatalogLoad)
		defer cancel()
		table, err := c.load(runCtx, lang)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[lang] = table
		c.mu.Unlock()
		return table, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Table), nil
	}
}

// Names returns the id to name map for language.
func (c *Catalog) Names(ctx context.Context, language string) (map[int]string, error) {
	table, err := c.Table(ctx, language)
	if err != nil {
		return nil, err
	}
	return table.Names(), nil
}

// Lookup finds a champion id by case-insensitive name in language.
func (c *Catalog) Lookup(ctx context.Context, language, name string) (int, bool, error) {
	table, err := c.Table(ctx, language)
	if err != nil {
		return 0, false, err
	}
	id, ok := table.Lookup(name)
	return id, ok, nil
}

// Cached returns the languages loaded so far, sorted.
func (c *Catalog) Cached() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	languages := make([]string, 0, len(c.tables))
	for lang := range c.tables {
		languages = append(languages, lang)
	}
	slices.Sort(languages)
	return languages
}

func (c *Catalog) cached(lang string) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.tables[lang]
	return table, ok
}

func (c *Catalog) load(ctx context.Context, lang string) (*Table, error) {
	version, err := c.source.LatestVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("load champions %s: %w", lang, err)
	}

	if c.store != nil {
		champions, found, err := c.store.LoadTable(ctx, version, lang)
		switch {
		case err != nil:
			log.Printf("champion store read %s %s: %v", version, lang, err)
		case found:
			log.Printf("champion table %s %s loaded from store (%d champions)", version, lang, len(champions))
			return NewTable(lang, version, champions), nil
		}
	}

	champions, err := c.source.Champions(ctx, version, lang)
	if err != nil {
		return nil, fmt.Errorf("load champions %s: %w", lang, err)
	}
	log.Printf("champion table %s %s downloaded (%d champions)", version, lang, len(champions))

	if c.store != nil {
		if err := c.store.SaveTable(ctx, version, lang, champions); err != nil {
			log.Printf("champion store write %s %s: %v", version, lang, err)
		}
	}
	return NewTable(lang, version, champions), nil
}
