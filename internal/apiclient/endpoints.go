package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"animeschedule/internal/models"
)

func pageQuery(path string, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s?page=%d", path, page)
}

func SearchEndpoint(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}

func (c *Client) Home(ctx context.Context) (*models.HomeData, error) {
	var data models.HomeData
	if _, err := c.FetchData(ctx, "/home", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) listPage(ctx context.Context, endpoint string) (*models.AnimeListPage, error) {
	var data models.AnimeListData
	env, err := c.FetchData(ctx, endpoint, &data)
	if err != nil {
		return nil, err
	}
	return &models.AnimeListPage{AnimeList: data.AnimeList, Pagination: env.Pagination}, nil
}

func (c *Client) Ongoing(ctx context.Context, page int) (*models.AnimeListPage, error) {
	return c.listPage(ctx, pageQuery("/ongoing", page))
}

func (c *Client) Completed(ctx context.Context, page int) (*models.AnimeListPage, error) {
	return c.listPage(ctx, pageQuery("/completed", page))
}

func (c *Client) Popular(ctx context.Context, page int) (*models.AnimeListPage, error) {
	return c.listPage(ctx, pageQuery("/popular", page))
}

func (c *Client) Movies(ctx context.Context) (*models.AnimeListPage, error) {
	return c.listPage(ctx, "/movies")
}

func (c *Client) Search(ctx context.Context, query string) (*models.AnimeListPage, error) {
	return c.listPage(ctx, SearchEndpoint(query))
}

func (c *Client) Anime(ctx context.Context, animeID string) (*models.AnimeDetail, error) {
	var data models.AnimeDetail
	if _, err := c.FetchData(ctx, "/anime/"+url.PathEscape(animeID), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Episode(ctx context.Context, episodeID string) (*models.EpisodeDetail, error) {
	var data models.EpisodeDetail
	if _, err := c.FetchData(ctx, "/episode/"+url.PathEscape(episodeID), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Schedule(ctx context.Context) ([]models.ScheduleDay, error) {
	var data models.ScheduleResponse
	if _, err := c.FetchData(ctx, "/schedule", &data); err != nil {
		return nil, err
	}
	return data.Days, nil
}

// Server resolves a stream url from data.url, falling back to a top-level url.
func (c *Client) Server(ctx context.Context, serverID string) (*models.ServerData, error) {
	endpoint := "/server/" + url.PathEscape(serverID)
	env, err := c.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data models.ServerData
	if decodeErr := env.DecodeData(&data); decodeErr != nil && env.URL == "" {
		return nil, fmt.Errorf("%s: %w", endpoint, decodeErr)
	}
	if data.URL == "" {
		data.URL = env.URL
	}
	if data.URL == "" {
		return nil, fmt.Errorf("%s: response has no stream url", endpoint)
	}
	return &data, nil
}
