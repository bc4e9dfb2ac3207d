package client

import (
	"context"
	"fmt"

	"hr-administration-api/internal/model"
)

// VendorsClient provides typed access to the vendor endpoints.
type VendorsClient struct {
	c *Client

	// Confirm guards deletion, like AssetsClient.Confirm.
	Confirm func(id int64) bool
}

// Vendors returns the vendor resource client.
func (c *Client) Vendors() *VendorsClient {
	return &VendorsClient{c: c}
}

// List fetches all vendors.
func (v *VendorsClient) List(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if _, err := v.c.get(ctx, "/api/vendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// Get fetches one vendor.
func (v *VendorsClient) Get(ctx context.Context, id int64) (*model.Vendor, error) {
	var vendor model.Vendor
	if _, err := v.c.get(ctx, fmt.Sprintf("/api/vendors/%d", id), nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Create submits a new vendor.
func (v *VendorsClient) Create(ctx context.Context, payload model.VendorPayload) (*model.Vendor, error) {
	var vendor model.Vendor
	if _, err := v.c.post(ctx, "/api/vendors", payload, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update submits a full replacement of the vendor.
func (v *VendorsClient) Update(ctx context.Context, id int64, payload model.VendorPayload) (*model.Vendor, error) {
	var vendor model.Vendor
	if _, err := v.c.put(ctx, fmt.Sprintf("/api/vendors/%d", id), payload, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Delete removes a vendor, asking for confirmation first when a Confirm hook
// is installed. An aborted delete returns false with no error.
func (v *VendorsClient) Delete(ctx context.Context, id int64) (bool, error) {
	if v.Confirm != nil && !v.Confirm(id) {
		return false, nil
	}
	if err := v.c.delete(ctx, fmt.Sprintf("/api/vendors/%d", id)); err != nil {
		return false, err
	}
	return true, nil
}
