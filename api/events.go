package api

import (
	"context"
	"net/http"
	"net/url"
)

// Event is a listed event. Venue and Category are populated when the backend
// expands them and nil otherwise.
type Event struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Time           string    `json:"time,omitempty"`
	Venue          *Venue    `json:"venue,omitempty"`
	Category       *Category `json:"category,omitempty"`
	TicketPrice    float64   `json:"ticketPrice"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	IsPublished    bool      `json:"isPublished"`
	Image          string    `json:"image,omitempty"`
}

// EventParams describe an event to create or update. References are by ID.
type EventParams struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time,omitempty"`
	VenueID     string  `json:"venue"`
	CategoryID  string  `json:"category"`
	TicketPrice float64 `json:"ticketPrice"`
	TotalSeats  int     `json:"totalSeats"`
	Image       string  `json:"image,omitempty"`
}

type eventsResponse struct {
	envelope
	Events []Event `json:"events"`
}

type eventResponse struct {
	envelope
	Event Event `json:"event"`
}

// Events lists all events visible to the caller.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var resp eventsResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/get-all-events", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// EventByID fetches one event.
func (c *Client) EventByID(ctx context.Context, id string) (Event, error) {
	var resp eventResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/get-eventById/"+url.PathEscape(id), nil, &resp); err != nil {
		return Event{}, err
	}
	if err := resp.check(); err != nil {
		return Event{}, err
	}
	return resp.Event, nil
}

// EventsByCategory lists the events filed under a category.
func (c *Client) EventsByCategory(ctx context.Context, categoryID string) ([]Event, error) {
	var resp eventsResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/get-eventByCategory/"+url.PathEscape(categoryID), nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// EventsByVenue lists the events scheduled at a venue.
func (c *Client) EventsByVenue(ctx context.Context, venueID string) ([]Event, error) {
	var resp eventsResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/get-event-by-venue/"+url.PathEscape(venueID), nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// CreateEvent creates an event in the organizer workspace.
func (c *Client) CreateEvent(ctx context.Context, params EventParams) (Event, error) {
	var resp eventResponse
	if err := c.do(ctx, http.MethodPost, "/api/events/create-event", params, &resp); err != nil {
		return Event{}, err
	}
	if err := resp.check(); err != nil {
		return Event{}, err
	}
	return resp.Event, nil
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, id string, params EventParams) (Event, error) {
	var resp eventResponse
	if err := c.do(ctx, http.MethodPut, "/api/events/update-event/"+url.PathEscape(id), params, &resp); err != nil {
		return Event{}, err
	}
	if err := resp.check(); err != nil {
		return Event{}, err
	}
	return resp.Event, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/api/events/delete-event/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	return resp.check()
}
