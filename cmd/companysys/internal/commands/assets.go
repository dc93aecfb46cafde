package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// AssetsCmd manages project asset links.
type AssetsCmd struct {
	List   AssetsListCmd   `cmd:"" help:"List assets"`
	Add    AssetsAddCmd    `cmd:"" help:"Attach an asset link to a project"`
	Delete AssetsDeleteCmd `cmd:"" help:"Delete an asset link"`
}

// AssetsListCmd lists asset links.
type AssetsListCmd struct {
	Project int    `help:"Filter by project ID"`
	Type    string `help:"Filter by asset type (GITHUB, GDRIVE, DOC)"`
}

func (c *AssetsListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermAssetsView); err != nil {
		return err
	}

	assets, err := a.client.ListAssets(ctx, api.AssetFilter{
		Project:   c.Project,
		AssetType: api.AssetType(c.Type),
	})
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if len(assets) == 0 {
		fmt.Println("No assets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tTYPE\tURL\tDESCRIPTION")
	for _, asset := range assets {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", asset.ID, asset.Project, asset.AssetType, asset.URL, asset.Description)
	}
	w.Flush()

	return nil
}

// AssetsAddCmd attaches an asset link to a project.
type AssetsAddCmd struct {
	Project     int    `help:"Project ID" required:""`
	Type        string `help:"Asset type (GITHUB, GDRIVE, DOC)" required:""`
	URL         string `arg:"" help:"Asset URL"`
	Description string `help:"Short description"`
}

func (c *AssetsAddCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermAssetsManage); err != nil {
		return err
	}

	asset, err := a.client.CreateAsset(ctx, api.AssetInput{
		Project:     c.Project,
		AssetType:   api.AssetType(c.Type),
		URL:         c.URL,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	fmt.Printf("Asset %d attached to project %d.\n", asset.ID, asset.Project)
	return nil
}

// AssetsDeleteCmd deletes an asset link.
type AssetsDeleteCmd struct {
	ID int `arg:"" help:"Asset ID"`
}

func (c *AssetsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermAssetsManage); err != nil {
		return err
	}

	if err := a.client.DeleteAsset(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	fmt.Printf("Asset %d deleted.\n", c.ID)
	return nil
}
