package router

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrStaleNavigation is returned when a newer navigation started before this
// one finished loading. The loaded data is discarded.
var ErrStaleNavigation = errors.New("navigation superseded")

type Result struct {
	Page       Page   `json:"page"`
	Params     Params `json:"params"`
	Fragment   string `json:"fragment"`
	Redirected bool   `json:"redirected"`
	Data       any    `json:"data"`
}

// Navigator runs page loads one generation at a time. Starting a navigation
// cancels the previous one.
type Navigator struct {
	table *Table

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	last   string
}

func NewNavigator(table *Table) *Navigator {
	return &Navigator{table: table}
}

// Navigate resolves fragment and loads its page. A page missing a required
// parameter is redirected to home.
func (n *Navigator) Navigate(ctx context.Context, fragment string) (*Result, error) {
	page, params := ParseFragment(fragment)
	page, route := n.table.Route(page)

	redirected := false
	if err := route.Check(page, params); err != nil {
		log.Printf("Redirecting to home: %v", err)
		page, params = PageHome, Params{}
		_, route = n.table.Route(page)
		redirected = true
	}

	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.gen++
	gen := n.gen
	loadCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.last = fragment
	n.mu.Unlock()

	defer cancel()

	data, err := route.Load(loadCtx, params)

	n.mu.Lock()
	stale := gen != n.gen
	if !stale {
		n.cancel = nil
	}
	n.mu.Unlock()

	if stale {
		return nil, ErrStaleNavigation
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Page:       page,
		Params:     params,
		Fragment:   Fragment(page, params),
		Redirected: redirected,
		Data:       data,
	}, nil
}

// Reload re-runs the most recent navigation.
func (n *Navigator) Reload(ctx context.Context) (*Result, error) {
	n.mu.Lock()
	last := n.last
	n.mu.Unlock()
	return n.Navigate(ctx, last)
}

// Generation is the number of navigations started so far.
func (n *Navigator) Generation() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.gen
}
