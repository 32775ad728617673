package router

import (
	"net/url"
	"strconv"
	"strings"
)

// Page names a navigable view.
type Page string

const (
	PageHome      Page = "home"
	PageSchedule  Page = "schedule"
	PageOngoing   Page = "ongoing"
	PageCompleted Page = "completed"
	PagePopular   Page = "popular"
	PageMovies    Page = "movies"
	PageFavorites Page = "favorites"
	PageSettings  Page = "settings"
	PageSearch    Page = "search"
	PageAnime     Page = "anime"
	PageEpisode   Page = "episode"
)

// Param is a fragment query key.
type Param string

const (
	ParamID      Param = "id"
	ParamQuery   Param = "q"
	ParamEpisode Param = "episode"
	// ParamPageNum is a short alias; the canonical form is a second page
	// value, as in "#page=ongoing&page=2".
	ParamPageNum Param = "p"
	ParamDay     Param = "day"
)

// Params are the decoded fragment parameters of a navigation.
type Params struct {
	ID      string `json:"id,omitempty"`
	Query   string `json:"q,omitempty"`
	Episode string `json:"episode,omitempty"`
	PageNum int    `json:"pageNum,omitempty"`
	Day     string `json:"day,omitempty"`
}

func (p Params) Get(key Param) string {
	switch key {
	case ParamID:
		return p.ID
	case ParamQuery:
		return p.Query
	case ParamEpisode:
		return p.Episode
	case ParamDay:
		return p.Day
	case ParamPageNum:
		if p.PageNum > 0 {
			return strconv.Itoa(p.PageNum)
		}
	}
	return ""
}

// ParseFragment decodes "#page=anime&id=x". A missing or unknown page is home.
// For the episode page a bare id is accepted in place of episode.
func ParseFragment(fragment string) (Page, Params) {
	fragment = strings.TrimPrefix(strings.TrimPrefix(fragment, "/"), "#")

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return PageHome, Params{}
	}

	page := PageHome
	named := false
	pageNum := 0
	for _, v := range values["page"] {
		if _, ok := knownPages[Page(v)]; ok && !named {
			page, named = Page(v), true
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 && pageNum == 0 {
			pageNum = n
		}
	}

	params := Params{
		ID:      values.Get(string(ParamID)),
		Query:   strings.TrimSpace(values.Get(string(ParamQuery))),
		Episode: values.Get(string(ParamEpisode)),
		Day:     values.Get(string(ParamDay)),
	}
	if n, err := strconv.Atoi(values.Get(string(ParamPageNum))); err == nil && n > 0 && pageNum == 0 {
		pageNum = n
	}
	params.PageNum = pageNum
	if page == PageEpisode && params.Episode == "" {
		params.Episode = params.ID
	}
	return page, params
}

// Fragment encodes page and params back into fragment form.
func Fragment(page Page, params Params) string {
	values := url.Values{}
	values.Set("page", string(page))
	if params.PageNum > 0 {
		values.Add("page", strconv.Itoa(params.PageNum))
	}
	for _, key := range []Param{ParamID, ParamQuery, ParamEpisode, ParamDay} {
		if v := params.Get(key); v != "" {
			values.Set(string(key), v)
		}
	}
	return "#" + values.Encode()
}

var knownPages = map[Page]struct{}{
	PageHome: {}, PageSchedule: {}, PageOngoing: {}, PageCompleted: {}, PagePopular: {},
	PageMovies: {}, PageFavorites: {}, PageSettings: {}, PageSearch: {}, PageAnime: {}, PageEpisode: {},
}
