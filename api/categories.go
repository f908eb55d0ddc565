package api

import (
	"context"
	"net/http"
	"net/url"
)

// Category groups events for browsing.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// CategoryParams describe a category to create or update.
type CategoryParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type categoriesResponse struct {
	envelope
	Categories []Category `json:"categories"`
}

type categoryResponse struct {
	envelope
	Category Category `json:"category"`
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories/get-category", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// CategoryByID fetches one category.
func (c *Client) CategoryByID(ctx context.Context, id string) (Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories/get-single-category/"+url.PathEscape(id), nil, &resp); err != nil {
		return Category{}, err
	}
	if err := resp.check(); err != nil {
		return Category{}, err
	}
	return resp.Category, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, params CategoryParams) (Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodPost, "/api/categories/create-category", params, &resp); err != nil {
		return Category{}, err
	}
	if err := resp.check(); err != nil {
		return Category{}, err
	}
	return resp.Category, nil
}

// UpdateCategory replaces a category's fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, params CategoryParams) (Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodPut, "/api/categories/update-category/"+url.PathEscape(id), params, &resp); err != nil {
		return Category{}, err
	}
	if err := resp.check(); err != nil {
		return Category{}, err
	}
	return resp.Category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/api/categories/delete-category/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	return resp.check()
}
