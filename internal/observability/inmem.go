package observability

import "sync"

type observe struct {
	Kind    string
	Source  string
	Method  string
	Route   string
	Status  int
	OK      bool
	Outcome string

	CacheMs, DbMs, Dur float64
}

// Inmem keeps a bounded window of recent observations plus running totals.
// Handy in development and as the default when Prometheus is not wired.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
		retries              map[string]int
	}
}

func NewInmem(max int) *Inmem {
	m := &Inmem{
		max: max,
	}
	m.totals.retries = make(map[string]int)
	return m
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveLookup(source string, cacheMs, dbMs float64) {
	m.push(&observe{Kind: "lookup", Source: source, CacheMs: cacheMs, DbMs: dbMs})
}

func (m *Inmem) ObserveUpsert(dbWriteMs float64) {
	m.push(&observe{Kind: "upsert", Dur: dbWriteMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, Dur: durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(&observe{Kind: "kafka", Dur: processMs, OK: ok})
}

func (m *Inmem) ObserveRetry(outcome string) {
	m.mu.Lock()
	if m.totals.retries == nil {
		m.totals.retries = make(map[string]int)
	}
	m.totals.retries[outcome]++
	m.mu.Unlock()
	m.push(&observe{Kind: "retry", Outcome: outcome})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}
func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// RetryTotal reports how many times an outcome was observed.
func (m *Inmem) RetryTotal(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.retries[outcome]
}
