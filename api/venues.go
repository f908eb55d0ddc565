package api

import (
	"context"
	"net/http"
	"net/url"
)

// Venue is a place events are held at.
type Venue struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image,omitempty"`
}

// VenueParams describe a venue to create or update.
type VenueParams struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image,omitempty"`
}

type venuesResponse struct {
	envelope
	Venues []Venue `json:"venues"`
}

type venueResponse struct {
	envelope
	Venue Venue `json:"venue"`
}

// Venues lists all venues.
func (c *Client) Venues(ctx context.Context) ([]Venue, error) {
	var resp venuesResponse
	if err := c.do(ctx, http.MethodGet, "/api/venues/get-venue", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Venues, nil
}

// VenueByID fetches one venue.
func (c *Client) VenueByID(ctx context.Context, id string) (Venue, error) {
	var resp venueResponse
	if err := c.do(ctx, http.MethodGet, "/api/venues/get-venueById/"+url.PathEscape(id), nil, &resp); err != nil {
		return Venue{}, err
	}
	if err := resp.check(); err != nil {
		return Venue{}, err
	}
	return resp.Venue, nil
}

// CreateVenue adds a venue.
func (c *Client) CreateVenue(ctx context.Context, params VenueParams) (Venue, error) {
	var resp venueResponse
	if err := c.do(ctx, http.MethodPost, "/api/venues/create-venue", params, &resp); err != nil {
		return Venue{}, err
	}
	if err := resp.check(); err != nil {
		return Venue{}, err
	}
	return resp.Venue, nil
}

// UpdateVenue replaces a venue's fields.
func (c *Client) UpdateVenue(ctx context.Context, id string, params VenueParams) (Venue, error) {
	var resp venueResponse
	if err := c.do(ctx, http.MethodPut, "/api/venues/update-venue/"+url.PathEscape(id), params, &resp); err != nil {
		return Venue{}, err
	}
	if err := resp.check(); err != nil {
		return Venue{}, err
	}
	return resp.Venue, nil
}

// DeleteVenue removes a venue.
func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/api/venues/delete-venue/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	return resp.check()
}
