package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Package is a service package: a priced laundry service billed per unit
// (kg, pcs, ...) with an estimated turnaround in days.
type Package struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	EstimatedDuration int             `json:"estimated_duration"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type PackageInput struct {
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Price             decimal.Decimal `json:"price"`
	EstimatedDuration int             `json:"estimated_duration"`
}

type packageList struct {
	Data []Package `json:"data"`
	Meta ListMeta  `json:"meta"`
}

func (c *Client) ListPackages(ctx context.Context, p ListParams) ([]Package, ListMeta, error) {
	var out packageList
	if err := c.get(ctx, "/package", p.query(), &out); err != nil {
		return nil, ListMeta{}, err
	}
	return out.Data, out.Meta, nil
}

func (c *Client) CreatePackage(ctx context.Context, in PackageInput) error {
	return c.post(ctx, "/package", in, nil)
}

func (c *Client) UpdatePackage(ctx context.Context, id int64, in PackageInput) error {
	return c.put(ctx, fmt.Sprintf("/package/%d", id), in, nil)
}

func (c *Client) DeletePackage(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/package/%d", id), nil)
}
