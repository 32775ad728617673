package models

// AnimeCard is the list item shape shared by home, ongoing, completed,
// popular, movies and search.
type AnimeCard struct {
	AnimeID  string     `json:"animeId"`
	Title    string     `json:"title"`
	Poster   string     `json:"poster"`
	Status   string     `json:"status,omitempty"`
	Episodes FlexString `json:"episodes,omitempty"`
	Score    FlexString `json:"score,omitempty"`
	Type     string     `json:"type,omitempty"`
}

type AnimeListData struct {
	AnimeList []AnimeCard `json:"animeList"`
}

// AnimeListPage is a list payload together with the envelope pagination.
type AnimeListPage struct {
	AnimeList  []AnimeCard `json:"animeList"`
	Pagination Pagination  `json:"pagination"`
}

type HomeData struct {
	Recent AnimeListData `json:"recent"`
	Movie  AnimeListData `json:"movie"`
}

type Synopsis struct {
	Paragraphs []string `json:"paragraphs"`
}

type EpisodeRef struct {
	Title     FlexString `json:"title"`
	EpisodeID string     `json:"episodeId"`
}

type AnimeDetail struct {
	Title       string       `json:"title"`
	English     string       `json:"english,omitempty"`
	Poster      string       `json:"poster"`
	Score       FlexString   `json:"score"`
	Status      string       `json:"status"`
	Type        string       `json:"type"`
	Duration    string       `json:"duration"`
	GenreList   Genres       `json:"genreList"`
	Synopsis    Synopsis     `json:"synopsis"`
	EpisodeList []EpisodeRef `json:"episodeList"`
}

type StreamServer struct {
	Title    string `json:"title"`
	ServerID string `json:"serverId"`
}

type ServerQuality struct {
	Title      string         `json:"title"`
	ServerList []StreamServer `json:"serverList"`
}

type DownloadURL struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type DownloadQuality struct {
	Title string        `json:"title"`
	URLs  []DownloadURL `json:"urls"`
}

type DownloadFormat struct {
	Title     string            `json:"title"`
	Qualities []DownloadQuality `json:"qualities"`
}

type EpisodeDetail struct {
	Title               string     `json:"title"`
	AnimeID             string     `json:"animeId"`
	DefaultStreamingURL string     `json:"defaultStreamingUrl"`
	HasPrevEpisode      bool       `json:"hasPrevEpisode"`
	PrevEpisode         EpisodeRef `json:"prevEpisode"`
	HasNextEpisode      bool       `json:"hasNextEpisode"`
	NextEpisode         EpisodeRef `json:"nextEpisode"`
	Server              struct {
		Qualities []ServerQuality `json:"qualities"`
	} `json:"server"`
	DownloadURL struct {
		Formats []DownloadFormat `json:"formats"`
	} `json:"downloadUrl"`
}

// ServerData is the /server/<id> payload carrying the stream URL.
type ServerData struct {
	URL string `json:"url"`
}
