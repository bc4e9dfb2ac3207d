package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"hr-administration-api/internal/allocation"
	"hr-administration-api/internal/model"
)

// ActivityReloadDelay is how long the asset workflow waits after a successful
// save before firing the activity reload hook, giving the server time to
// flush the new activity rows.
const ActivityReloadDelay = time.Second

// AssetsClient provides typed access to the asset endpoints.
type AssetsClient struct {
	c *Client

	// Confirm guards deletion. When set, a false answer aborts the delete
	// without touching the network.
	Confirm func(assetID string) bool

	// OnActivityReload runs, delayed, after every successful save.
	OnActivityReload func()
}

// Assets returns the asset resource client.
func (c *Client) Assets() *AssetsClient {
	return &AssetsClient{c: c}
}

// List fetches one page of assets.
func (a *AssetsClient) List(ctx context.Context, page, limit int) ([]model.Asset, *Pagination, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var assets []model.Asset
	env, err := a.c.get(ctx, "/api/assets", query, &assets)
	if err != nil {
		return nil, nil, err
	}
	return assets, env.Pagination, nil
}

// Get fetches one asset by its business key.
func (a *AssetsClient) Get(ctx context.Context, assetID string) (*model.Asset, error) {
	var asset model.Asset
	if _, err := a.c.get(ctx, "/api/assets/"+url.PathEscape(assetID), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// NextID fetches the advisory next free business key for the create form.
func (a *AssetsClient) NextID(ctx context.Context) (string, error) {
	var data struct {
		NextID string `json:"nextId"`
	}
	if _, err := a.c.get(ctx, "/api/assets/next-id", nil, &data); err != nil {
		return "", err
	}
	return data.NextID, nil
}

// Create validates the form locally and, only if it passes, submits it. The
// returned asset is refetched from the server so the caller sees exactly what
// was stored, not what was sent.
func (a *AssetsClient) Create(ctx context.Context, form allocation.Form) (*model.Asset, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var created model.Asset
	if _, err := a.c.post(ctx, "/api/assets", form.BuildPayload(), &created); err != nil {
		return nil, err
	}

	return a.afterSave(ctx, created.AssetID)
}

// Update validates the form locally and, only if it passes, submits a full
// replacement of the asset.
func (a *AssetsClient) Update(ctx context.Context, assetID string, form allocation.Form) (*model.Asset, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.c.put(ctx, "/api/assets/"+url.PathEscape(assetID), form.BuildPayload(), nil); err != nil {
		return nil, err
	}

	return a.afterSave(ctx, assetID)
}

// Delete removes an asset, asking for confirmation first when a Confirm hook
// is installed. An aborted delete returns false with no error.
func (a *AssetsClient) Delete(ctx context.Context, assetID string) (bool, error) {
	if a.Confirm != nil && !a.Confirm(assetID) {
		return false, nil
	}
	if err := a.c.delete(ctx, "/api/assets/"+url.PathEscape(assetID)); err != nil {
		return false, err
	}
	return true, nil
}

// EditForm fetches an asset and opens it as an allocation form. An ambiguous
// stored allocation is surfaced, never silently resolved.
func (a *AssetsClient) EditForm(ctx context.Context, assetID string) (allocation.Form, error) {
	asset, err := a.Get(ctx, assetID)
	if err != nil {
		return allocation.Form{}, err
	}
	return allocation.FormFromAsset(*asset)
}

func (a *AssetsClient) afterSave(ctx context.Context, assetID string) (*model.Asset, error) {
	refreshed, err := a.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.OnActivityReload != nil {
		time.AfterFunc(ActivityReloadDelay, a.OnActivityReload)
	}
	return refreshed, nil
}
