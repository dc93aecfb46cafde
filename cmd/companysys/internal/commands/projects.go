package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// ProjectsCmd manages projects.
type ProjectsCmd struct {
	List   ProjectsListCmd   `cmd:"" help:"List projects"`
	Show   ProjectsShowCmd   `cmd:"" help:"Show a project with its tasks and assets"`
	Create ProjectsCreateCmd `cmd:"" help:"Create a project"`
	Update ProjectsUpdateCmd `cmd:"" help:"Update a project"`
	Delete ProjectsDeleteCmd `cmd:"" help:"Delete a project"`
}

// ProjectsListCmd lists projects visible to the current role.
type ProjectsListCmd struct {
	Search string `help:"Filter by name or description"`
	PM     int    `help:"Filter by project manager user ID"`
}

func (c *ProjectsListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermProjectsView); err != nil {
		return err
	}

	projects, err := a.client.ListProjects(ctx, api.ProjectFilter{Search: c.Search, PM: c.PM})
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPM\tSTART\tEND\tTASKS")
	for _, p := range projects {
		pm := "-"
		if p.PM != nil {
			pm = p.PM.Username
		}
		end := p.EndDate
		if end == "" {
			end = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, pm, p.StartDate, end, len(p.Tasks))
	}
	w.Flush()

	return nil
}

// ProjectsShowCmd shows one project in full.
type ProjectsShowCmd struct {
	ID int `arg:"" help:"Project ID"`
}

func (c *ProjectsShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermProjectsView); err != nil {
		return err
	}

	p, err := a.client.GetProject(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Description: %s\n", p.Description)
	if p.PM != nil {
		fmt.Printf("PM:          %s\n", p.PM.Username)
	}
	fmt.Printf("Start:       %s\n", p.StartDate)
	if p.EndDate != "" {
		fmt.Printf("End:         %s\n", p.EndDate)
	}

	if len(p.Tasks) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TASK\tTITLE\tSTATUS\tASSIGNED")
		for _, t := range p.Tasks {
			assigned := "-"
			if t.AssignedTo != nil {
				assigned = t.AssignedTo.Username
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, assigned)
		}
		w.Flush()
	}

	if len(p.Assets) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ASSET\tTYPE\tURL")
		for _, asset := range p.Assets {
			fmt.Fprintf(w, "%d\t%s\t%s\n", asset.ID, asset.AssetType, asset.URL)
		}
		w.Flush()
	}

	return nil
}

// ProjectsCreateCmd creates a project.
type ProjectsCreateCmd struct {
	Name        string `arg:"" help:"Project name"`
	Description string `help:"Project description"`
	StartDate   string `help:"Start date (YYYY-MM-DD)" required:""`
	EndDate     string `help:"End date (YYYY-MM-DD)"`
	PMID        int    `help:"Project manager user ID"`
}

func (c *ProjectsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermProjectsManage); err != nil {
		return err
	}

	p, err := a.client.CreateProject(ctx, api.ProjectInput{
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		PMID:        c.PMID,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Project %q created with ID %d.\n", p.Name, p.ID)
	return nil
}

// ProjectsUpdateCmd patches a project.
type ProjectsUpdateCmd struct {
	ID          int    `arg:"" help:"Project ID"`
	Name        string `help:"New name"`
	Description string `help:"New description"`
	EndDate     string `help:"New end date (YYYY-MM-DD)"`
	PMID        int    `help:"New project manager user ID"`
}

func (c *ProjectsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermProjectsManage); err != nil {
		return err
	}

	p, err := a.client.UpdateProject(ctx, c.ID, api.ProjectInput{
		Name:        c.Name,
		Description: c.Description,
		EndDate:     c.EndDate,
		PMID:        c.PMID,
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("Project %q updated.\n", p.Name)
	return nil
}

// ProjectsDeleteCmd deletes a project. Admin only.
type ProjectsDeleteCmd struct {
	ID    int  `arg:"" help:"Project ID"`
	Force bool `help:"Skip confirmation" default:"false"`
}

func (c *ProjectsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermProjectsDelete); err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete project %d and all of its tasks? [y/N]: ", c.ID)

		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.client.DeleteProject(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("Project %d deleted.\n", c.ID)
	return nil
}
