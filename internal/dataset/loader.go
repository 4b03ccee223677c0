package dataset

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

type datasetKind int

const (
	kindPhases datasetKind = iota
	kindStyles
)

// Loader parses datasets on demand and memoizes the result per source
// version. Concurrent loads of the same source collapse into one
// parse. Returned slices are shared; callers must not mutate them.
type Loader struct {
	phases Source
	styles Source
	cache  *cache
	group  singleflight.Group
}

// NewLoader creates a loader over the two dataset sources.
func NewLoader(phases, styles Source) *Loader {
	return &Loader{
		phases: phases,
		styles: styles,
		cache:  newCache(),
	}
}

// Phases returns the parsed phases dataset, reloading when the source
// version changed since the last load.
func (l *Loader) Phases(ctx context.Context) ([]PhaseRecord, error) {
	e, err := l.load(ctx, l.phases, kindPhases)
	if err != nil {
		return nil, err
	}
	return e.phases, nil
}

// Styles returns the parsed styles dataset, reloading when the source
// version changed since the last load.
func (l *Loader) Styles(ctx context.Context) ([]StyleRecord, error) {
	e, err := l.load(ctx, l.styles, kindStyles)
	if err != nil {
		return nil, err
	}
	return e.styles, nil
}

// CacheSize returns the number of memoized datasets.
func (l *Loader) CacheSize() int {
	return l.cache.size()
}

// Invalidate drops every memoized dataset. The next load reparses.
func (l *Loader) Invalidate() {
	l.cache.clear()
}

func (l *Loader) load(ctx context.Context, src Source, kind datasetKind) (*entry, error) {
	version, err := src.Version()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}

	if version != "" {
		if e, ok := l.cache.get(src.Name(), version); ok {
			return e, nil
		}
	}

	v, err, _ := l.group.Do(src.Name()+"\x00"+version, func() (interface{}, error) {
		// Another caller may have populated the cache while this one
		// waited on the flight key.
		if version != "" {
			if e, ok := l.cache.get(src.Name(), version); ok {
				return e, nil
			}
		}
		return l.parse(ctx, src, kind, version)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (l *Loader) parse(ctx context.Context, src Source, kind datasetKind, version string) (*entry, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	defer rc.Close()

	e := &entry{version: version, loadedAt: time.Now()}
	switch kind {
	case kindPhases:
		records, err := ParsePhases(rc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
		e.phases = records
	case kindStyles:
		records, err := ParseStyles(rc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
		e.styles = records
	}

	if version != "" {
		l.cache.set(src.Name(), e)
	}
	return e, nil
}
