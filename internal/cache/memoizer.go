package cache

import (
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/reconcile"
	"github.com/opsvantage/triage-cli/internal/workbook"
)

// Memoizer wraps the reconciliation engine with the result cache. Within the
// TTL window at most one pipeline run happens per (digest, region), even
// under concurrent callers: losers of the race share the winner's result.
type Memoizer struct {
	engine *reconcile.Engine
	cache  *ResultCache
	group  singleflight.Group
}

// NewMemoizer wires an engine to a result cache.
func NewMemoizer(engine *reconcile.Engine, cache *ResultCache) *Memoizer {
	return &Memoizer{engine: engine, cache: cache}
}

// Reconcile returns the reconciled result for a source and region, running
// the engine only on cache miss. Errors are never cached; a failed run is
// retried on the next call.
func (m *Memoizer) Reconcile(src workbook.Source, region model.Region) (*reconcile.Result, error) {
	data, err := src.Load()
	if err != nil {
		return nil, &workbook.DataLoadError{Reason: "source unreadable", Cause: err}
	}
	digest := workbook.Digest(data)

	if res := m.cache.Get(digest, region.String()); res != nil {
		zap.L().Debug("cache: hit",
			zap.String("source", src.Name),
			zap.String("region", region.String()),
		)
		return res, nil
	}

	v, err, shared := m.group.Do(resultKey(digest, region.String()), func() (any, error) {
		// Re-check under singleflight: a concurrent winner may have filled
		// the cache between our miss and this call.
		if res := m.cache.Get(digest, region.String()); res != nil {
			return res, nil
		}
		res, err := m.engine.Run(data, region)
		if err != nil {
			return nil, err
		}
		m.cache.Put(digest, region.String(), res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		zap.L().Debug("cache: shared in-flight computation",
			zap.String("source", src.Name),
			zap.String("region", region.String()),
		)
	}

	return v.(*reconcile.Result), nil
}

// Invalidate drops every cached result computed from the given source bytes.
func (m *Memoizer) Invalidate(src workbook.Source) error {
	data, err := src.Load()
	if err != nil {
		return err
	}
	m.cache.InvalidateSource(workbook.Digest(data))
	return nil
}

// Stats exposes the underlying cache statistics.
func (m *Memoizer) Stats() Stats {
	return m.cache.Stats()
}
