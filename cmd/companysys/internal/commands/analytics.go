package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// AnalyticsCmd summarises task progress per project. The rollup happens
// client side from the same project and task listings the other commands
// use, so it reflects exactly what the caller's role can see.
type AnalyticsCmd struct {
	CSV string `help:"Write the summary as CSV to this file instead of printing a table"`
}

// projectStats is one row of the summary.
type projectStats struct {
	project    api.Project
	byStatus   map[api.TaskStatus]int
	totalTasks int
}

func (c *AnalyticsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermAnalyticsView); err != nil {
		return err
	}

	projects, err := a.client.ListProjects(ctx, api.ProjectFilter{})
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	stats := rollupProjects(projects)

	if c.CSV != "" {
		if err := writeStatsCSV(c.CSV, stats); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		fmt.Printf("Summary for %d projects written to %s.\n", len(stats), c.CSV)
		return nil
	}

	if len(stats) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tTODO\tIN_PROGRESS\tREVIEW\tDONE\tTOTAL\tCOMPLETE")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			s.project.Name,
			s.byStatus[api.TaskTodo],
			s.byStatus[api.TaskInProgress],
			s.byStatus[api.TaskReview],
			s.byStatus[api.TaskDone],
			s.totalTasks,
			formatPercent(s.byStatus[api.TaskDone], s.totalTasks),
		)
	}
	w.Flush()

	return nil
}

// rollupProjects counts tasks by status for each project, preserving the
// listing order.
func rollupProjects(projects []api.Project) []projectStats {
	stats := make([]projectStats, 0, len(projects))
	for _, p := range projects {
		s := projectStats{project: p, byStatus: make(map[api.TaskStatus]int)}
		for _, t := range p.Tasks {
			s.byStatus[t.Status]++
			s.totalTasks++
		}
		stats = append(stats, s)
	}
	return stats
}

func formatPercent(done, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(done)/float64(total)*100)
}

func writeStatsCSV(path string, stats []projectStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"project", "todo", "in_progress", "review", "done", "total"}); err != nil {
		return err
	}
	for _, s := range stats {
		record := []string{
			s.project.Name,
			strconv.Itoa(s.byStatus[api.TaskTodo]),
			strconv.Itoa(s.byStatus[api.TaskInProgress]),
			strconv.Itoa(s.byStatus[api.TaskReview]),
			strconv.Itoa(s.byStatus[api.TaskDone]),
			strconv.Itoa(s.totalTasks),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
