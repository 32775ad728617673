package router

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"animeschedule/internal/models"
	"animeschedule/internal/schedule"
	"animeschedule/internal/state"
)

// ErrMissingParameter is matched by every MissingParameterError.
var ErrMissingParameter = errors.New("missing required parameter")

type MissingParameterError struct {
	Page  Page
	Param Param
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("page %s requires parameter %q", e.Page, e.Param)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// Catalog is the upstream data the pages render.
type Catalog interface {
	Home(ctx context.Context) (*models.HomeData, error)
	Ongoing(ctx context.Context, page int) (*models.AnimeListPage, error)
	Completed(ctx context.Context, page int) (*models.AnimeListPage, error)
	Popular(ctx context.Context, page int) (*models.AnimeListPage, error)
	Movies(ctx context.Context) (*models.AnimeListPage, error)
	Search(ctx context.Context, query string) (*models.AnimeListPage, error)
	Anime(ctx context.Context, animeID string) (*models.AnimeDetail, error)
	Episode(ctx context.Context, episodeID string) (*models.EpisodeDetail, error)
	Schedule(ctx context.Context) ([]models.ScheduleDay, error)
}

// Preferences is the persisted user state the pages read.
type Preferences interface {
	Favorites() []string
	IsFavorite(id string) bool
	CurrentDay() string
	SetCurrentDay(ctx context.Context, day string) error
	Snapshot() state.State
}

// LoadFunc produces the data for one page.
type LoadFunc func(ctx context.Context, params Params) (any, error)

type Route struct {
	Required []Param
	Load     LoadFunc
}

// Check returns a MissingParameterError for the first absent required param.
func (r Route) Check(page Page, params Params) error {
	for _, key := range r.Required {
		if params.Get(key) == "" {
			return &MissingParameterError{Page: page, Param: key}
		}
	}
	return nil
}

// OngoingMode selects what the ongoing page shows.
type OngoingMode string

const (
	OngoingList     OngoingMode = "list"
	OngoingSchedule OngoingMode = "schedule"
)

type Options struct {
	Ongoing  OngoingMode
	Location *time.Location
	Now      func() time.Time
}

// AnimePage is the anime detail with the viewer's favorite flag.
type AnimePage struct {
	Anime      *models.AnimeDetail `json:"anime"`
	IsFavorite bool                `json:"isFavorite"`
}

type FavoriteCard struct {
	AnimeID string `json:"animeId"`
	Title   string `json:"title"`
}

type FavoritesPage struct {
	Favorites []FavoriteCard `json:"favorites"`
}

// Table is the declarative page to route mapping.
type Table struct {
	routes  map[Page]Route
	catalog Catalog
	prefs   Preferences
	opts    Options
}

func NewTable(catalog Catalog, prefs Preferences, opts Options) *Table {
	if opts.Ongoing == "" {
		opts.Ongoing = OngoingList
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	t := &Table{catalog: catalog, prefs: prefs, opts: opts}
	t.routes = map[Page]Route{
		PageHome:      {Load: t.loadHome},
		PageSchedule:  {Load: t.loadSchedule},
		PageOngoing:   {Load: t.loadOngoing},
		PageCompleted: {Load: t.loadCompleted},
		PagePopular:   {Load: t.loadPopular},
		PageMovies:    {Load: t.loadMovies},
		PageFavorites: {Load: t.loadFavorites},
		PageSettings:  {Load: t.loadSettings},
		PageSearch:    {Required: []Param{ParamQuery}, Load: t.loadSearch},
		PageAnime:     {Required: []Param{ParamID}, Load: t.loadAnime},
		PageEpisode:   {Required: []Param{ParamEpisode}, Load: t.loadEpisode},
	}
	return t
}

// Route returns the route for page, falling back to home.
func (t *Table) Route(page Page) (Page, Route) {
	if r, ok := t.routes[page]; ok {
		return page, r
	}
	return PageHome, t.routes[PageHome]
}

// Board builds the schedule board for day, or for the persisted/current day
// when day is empty or invalid.
func (t *Table) Board(ctx context.Context, day string) (*schedule.Board, error) {
	days, err := t.catalog.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	now := t.opts.Now().In(t.opts.Location)

	selected, ok := schedule.ParseDayBucket(day)
	if ok {
		// an explicitly picked day is remembered for the next visit
		if err := t.prefs.SetCurrentDay(ctx, string(selected)); err != nil {
			log.Printf("Failed to persist selected day %s: %v", selected, err)
		}
	} else {
		selected = schedule.SelectDay(t.prefs.CurrentDay(), now)
	}
	board := schedule.BuildBoard(days, selected, now)
	return &board, nil
}

func (t *Table) loadHome(ctx context.Context, _ Params) (any, error) {
	return t.catalog.Home(ctx)
}

func (t *Table) loadSchedule(ctx context.Context, p Params) (any, error) {
	return t.Board(ctx, p.Day)
}

func (t *Table) loadOngoing(ctx context.Context, p Params) (any, error) {
	if t.opts.Ongoing == OngoingSchedule {
		return t.Board(ctx, p.Day)
	}
	return t.catalog.Ongoing(ctx, p.PageNum)
}

func (t *Table) loadCompleted(ctx context.Context, p Params) (any, error) {
	return t.catalog.Completed(ctx, p.PageNum)
}

func (t *Table) loadPopular(ctx context.Context, p Params) (any, error) {
	return t.catalog.Popular(ctx, p.PageNum)
}

func (t *Table) loadMovies(ctx context.Context, _ Params) (any, error) {
	return t.catalog.Movies(ctx)
}

func (t *Table) loadSearch(ctx context.Context, p Params) (any, error) {
	return t.catalog.Search(ctx, p.Query)
}

func (t *Table) loadAnime(ctx context.Context, p Params) (any, error) {
	detail, err := t.catalog.Anime(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &AnimePage{Anime: detail, IsFavorite: t.prefs.IsFavorite(p.ID)}, nil
}

func (t *Table) loadEpisode(ctx context.Context, p Params) (any, error) {
	return t.catalog.Episode(ctx, p.Episode)
}

// Favorites are listed from the persisted ids alone, titled from the slug.
func (t *Table) loadFavorites(_ context.Context, _ Params) (any, error) {
	ids := t.prefs.Favorites()
	cards := make([]FavoriteCard, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, FavoriteCard{AnimeID: id, Title: strings.ReplaceAll(id, "-", " ")})
	}
	return &FavoritesPage{Favorites: cards}, nil
}

func (t *Table) loadSettings(_ context.Context, _ Params) (any, error) {
	s := t.prefs.Snapshot()
	return &s, nil
}
