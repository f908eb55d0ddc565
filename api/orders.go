package api

import (
	"context"
	"net/http"
	"net/url"
)

// Order is a ticket purchase.
type Order struct {
	ID          string   `json:"_id"`
	User        *User    `json:"user,omitempty"`
	Event       *Event   `json:"event,omitempty"`
	Seats       []string `json:"seats,omitempty"`
	TotalAmount float64  `json:"totalAmount"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// OrderParams describe a purchase: which event and which seats.
type OrderParams struct {
	EventID     string   `json:"eventId"`
	Seats       []string `json:"seats"`
	TotalAmount float64  `json:"totalAmount"`
}

// PaymentParams start a checkout with the backend's payment provider.
type PaymentParams struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
	Email   string  `json:"email,omitempty"`
}

// Payment is the backend's answer to a checkout request: where to send the
// buyer and the reference to verify with afterwards.
type Payment struct {
	CheckoutURL string `json:"checkoutUrl"`
	TxRef       string `json:"tx_ref"`
	Status      string `json:"status,omitempty"`
}

type ordersResponse struct {
	envelope
	Orders []Order `json:"orders"`
}

type orderResponse struct {
	envelope
	Order Order `json:"order"`
}

type paymentResponse struct {
	envelope
	Payment Payment `json:"payment"`
}

// CreateOrder places an order. Seat availability is the backend's problem;
// a conflict comes back as *Error.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/create-order", params, &resp); err != nil {
		return Order{}, err
	}
	if err := resp.check(); err != nil {
		return Order{}, err
	}
	return resp.Order, nil
}

// UserOrders lists the signed-in user's orders.
func (c *Client) UserOrders(ctx context.Context) ([]Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/user-orders", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// DownloadTickets fetches the ticket archive for an order as raw bytes.
func (c *Client) DownloadTickets(ctx context.Context, orderID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/api/orders/download-tickets/"+url.PathEscape(orderID), nil)
}

// Pay starts a checkout for an order.
func (c *Client) Pay(ctx context.Context, params PaymentParams) (Payment, error) {
	var resp paymentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment/pay", params, &resp); err != nil {
		return Payment{}, err
	}
	if err := resp.check(); err != nil {
		return Payment{}, err
	}
	return resp.Payment, nil
}

// VerifyPayment asks whether the checkout identified by txRef settled.
func (c *Client) VerifyPayment(ctx context.Context, txRef string) (Payment, error) {
	var resp paymentResponse
	if err := c.do(ctx, http.MethodGet, "/api/payment/verify-payment/"+url.PathEscape(txRef), nil, &resp); err != nil {
		return Payment{}, err
	}
	if err := resp.check(); err != nil {
		return Payment{}, err
	}
	return resp.Payment, nil
}
