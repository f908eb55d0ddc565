package api

import (
	"context"
	"net/http"
	"net/url"
)

// DashboardStats summarize the marketplace for the admin dashboard.
type DashboardStats struct {
	TotalUsers   int     `json:"totalUsers"`
	TotalEvents  int     `json:"totalEvents"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type statsResponse struct {
	envelope
	Stats DashboardStats `json:"stats"`
}

type usersResponse struct {
	envelope
	Users []User `json:"users"`
}

// DashboardStats fetches the admin dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/admin-dashboard-stats", nil, &resp); err != nil {
		return DashboardStats{}, err
	}
	if err := resp.check(); err != nil {
		return DashboardStats{}, err
	}
	return resp.Stats, nil
}

// Users lists every account.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/get-users", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ChangeUserRole reassigns an account's role.
func (c *Client) ChangeUserRole(ctx context.Context, userID, role string) error {
	body := struct {
		Role string `json:"role"`
	}{Role: role}
	var resp envelope
	if err := c.do(ctx, http.MethodPut, "/api/auth/change-role/"+url.PathEscape(userID), body, &resp); err != nil {
		return err
	}
	return resp.check()
}

// SetEventPublished flips an event's public visibility.
func (c *Client) SetEventPublished(ctx context.Context, eventID string, published bool) error {
	body := struct {
		IsPublished bool `json:"isPublished"`
	}{IsPublished: published}
	var resp envelope
	if err := c.do(ctx, http.MethodPut, "/api/admin/update-publish-status/"+url.PathEscape(eventID), body, &resp); err != nil {
		return err
	}
	return resp.check()
}

// AllOrders lists every order in the marketplace.
func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/get-orders", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	var resp envelope
	if err := c.do(ctx, http.MethodPut, "/api/admin/update-order-status/"+url.PathEscape(orderID), body, &resp); err != nil {
		return err
	}
	return resp.check()
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	var resp envelope
	if err := c.do(ctx, http.MethodDelete, "/api/admin/delete-order/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return err
	}
	return resp.check()
}
