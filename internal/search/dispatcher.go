package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"animeschedule/internal/debounce"
	"animeschedule/internal/models"
)

// Searcher runs one search query against the catalog.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.AnimeListPage, error)
}

type Result struct {
	Query string
	Data  *models.AnimeListPage
	Err   error
}

// Dispatcher turns a stream of raw search box input into debounced search
// calls. Only the newest query's result is delivered to the sink.
type Dispatcher struct {
	searcher  Searcher
	sink      func(Result)
	debouncer *debounce.Debouncer[string]

	mu     sync.Mutex
	ctx    context.Context
	gen    uint64
	cancel context.CancelFunc
}

func NewDispatcher(ctx context.Context, searcher Searcher, delay time.Duration, sink func(Result)) *Dispatcher {
	d := &Dispatcher{
		searcher: searcher,
		sink:     sink,
		ctx:      ctx,
	}
	d.debouncer = debounce.New(delay, d.run)
	return d
}

// Input feeds raw text. Blank input is ignored.
func (d *Dispatcher) Input(text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		return
	}
	d.debouncer.Trigger(query)
}

func (d *Dispatcher) run(query string) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	gen := d.gen
	ctx, cancel := context.WithCancel(d.ctx)
	d.cancel = cancel
	d.mu.Unlock()

	defer cancel()

	log.Printf("Searching for %q", query)
	data, err := d.searcher.Search(ctx, query)

	d.mu.Lock()
	current := gen == d.gen
	d.mu.Unlock()
	if !current {
		log.Printf("Dropping superseded search result for %q", query)
		return
	}

	d.sink(Result{Query: query, Data: data, Err: err})
}

// Close stops pending input and cancels the in-flight search.
func (d *Dispatcher) Close() {
	d.debouncer.Stop()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
