package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AssetFilter narrows ListAssets. Zero values mean no filter.
type AssetFilter struct {
	Project   int
	AssetType AssetType
}

// AssetInput carries the writable asset fields.
type AssetInput struct {
	Project     int       `json:"project,omitempty"`
	AssetType   AssetType `json:"asset_type,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ListAssets returns project assets.
func (c *Client) ListAssets(ctx context.Context, filter AssetFilter) ([]Asset, error) {
	query := url.Values{}
	if filter.Project != 0 {
		query.Set("project", fmt.Sprintf("%d", filter.Project))
	}
	if filter.AssetType != "" {
		query.Set("asset_type", string(filter.AssetType))
	}

	data, err := c.doRaw(ctx, http.MethodGet, "/assets/", query, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Asset](data)
}

// CreateAsset attaches an asset link to a project.
func (c *Client) CreateAsset(ctx context.Context, input AssetInput) (*Asset, error) {
	var asset Asset
	if err := c.do(ctx, http.MethodPost, "/assets/", nil, input, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset link.
func (c *Client) DeleteAsset(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/assets/%d/", id), nil, nil, nil)
}
