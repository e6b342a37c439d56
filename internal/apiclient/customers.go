package apiclient

import (
	"context"
	"fmt"
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerInput is the writable subset for create/update.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type customerList struct {
	Data []Customer `json:"data"`
	Meta ListMeta   `json:"meta"`
}

func (c *Client) ListCustomers(ctx context.Context, p ListParams) ([]Customer, ListMeta, error) {
	var out customerList
	if err := c.get(ctx, "/customer", p.query(), &out); err != nil {
		return nil, ListMeta{}, err
	}
	return out.Data, out.Meta, nil
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) error {
	return c.post(ctx, "/customer", in, nil)
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) error {
	return c.put(ctx, fmt.Sprintf("/customer/%d", id), in, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/customer/%d", id), nil)
}
