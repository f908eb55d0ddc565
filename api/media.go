package api

import (
	"context"
	"net/http"
	"net/url"
)

// Media is a managed asset (banner, gallery image) served by the backend.
type Media struct {
	ID    string `json:"_id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// MediaParams describe an asset to register.
type MediaParams struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

type mediaListResponse struct {
	envelope
	Media []Media `json:"media"`
}

type mediaResponse struct {
	envelope
	Media Media `json:"media"`
}

// MediaItems lists all managed assets.
func (c *Client) MediaItems(ctx context.Context) ([]Media, error) {
	var resp mediaListResponse
	if err := c.do(ctx, http.MethodGet, "/api/media/get-all", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// CreateMedia registers an asset.
func (c *Client) CreateMedia(ctx context.Context, params MediaParams) (Media, error) {
	var resp mediaResponse
	if err := c.do(ctx, http.MethodPost, "/api/media/create", params, &resp); err != nil {
		return Media{}, err
	}
	if err := resp.check(); err != nil {
		return Media{}, err
	}
	return resp.Media, nil
}

// DeleteMedia removes an asset.
func (c *Client) DeleteMedia(ctx context.Context, id string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/api/media/delete/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	return resp.check()
}
