package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// TasksCmd manages tasks.
type TasksCmd struct {
	List    TasksListCmd    `cmd:"" help:"List tasks"`
	Show    TasksShowCmd    `cmd:"" help:"Show a task with its comments"`
	Create  TasksCreateCmd  `cmd:"" help:"Create a task"`
	Update  TasksUpdateCmd  `cmd:"" help:"Update a task"`
	Delete  TasksDeleteCmd  `cmd:"" help:"Delete a task"`
	Advance TasksAdvanceCmd `cmd:"" help:"Move a task to the next status"`
	Comment TasksCommentCmd `cmd:"" help:"Comment on a task"`
}

// TasksListCmd lists tasks visible to the current role.
type TasksListCmd struct {
	Project    int    `help:"Filter by project ID"`
	AssignedTo int    `help:"Filter by assignee user ID"`
	Status     string `help:"Filter by status (TODO, IN_PROGRESS, REVIEW, DONE)"`
	Sprint     string `help:"Filter by sprint"`
	Search     string `help:"Filter by title, description or sprint"`
}

func (c *TasksListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksView); err != nil {
		return err
	}

	tasks, err := a.client.ListTasks(ctx, api.TaskFilter{
		Project:    c.Project,
		AssignedTo: c.AssignedTo,
		Status:     api.TaskStatus(c.Status),
		Sprint:     c.Sprint,
		Search:     c.Search,
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tSPRINT\tASSIGNED\tDUE")
	for _, t := range tasks {
		assigned := "-"
		if t.AssignedTo != nil {
			assigned = t.AssignedTo.Username
		}
		sprint := t.Sprint
		if sprint == "" {
			sprint = "-"
		}
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, sprint, assigned, due)
	}
	w.Flush()

	return nil
}

// TasksShowCmd shows one task and its comments.
type TasksShowCmd struct {
	ID int `arg:"" help:"Task ID"`
}

func (c *TasksShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksView); err != nil {
		return err
	}

	t, err := a.client.GetTask(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	fmt.Printf("Title:       %s\n", t.Title)
	fmt.Printf("Status:      %s\n", t.Status)
	fmt.Printf("Project:     %d\n", t.Project)
	if t.AssignedTo != nil {
		fmt.Printf("Assigned to: %s\n", t.AssignedTo.Username)
	}
	if t.Sprint != "" {
		fmt.Printf("Sprint:      %s\n", t.Sprint)
	}
	if t.DueDate != "" {
		fmt.Printf("Due:         %s\n", t.DueDate)
	}
	if t.GithubPRURL != "" {
		fmt.Printf("PR:          %s\n", t.GithubPRURL)
	}
	if t.Description != "" {
		fmt.Println()
		fmt.Println(t.Description)
	}

	comments, err := a.client.ListComments(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if len(comments) > 0 {
		fmt.Println()
		fmt.Println("Comments:")
		for _, comment := range comments {
			author := "-"
			if comment.Author != nil {
				author = comment.Author.Username
			}
			fmt.Printf("  [%s] %s: %s\n", comment.CreatedAt.Format("2006-01-02 15:04"), author, comment.Body)
		}
	}

	return nil
}

// TasksCreateCmd creates a task within a project.
type TasksCreateCmd struct {
	Title        string `arg:"" help:"Task title"`
	Project      int    `help:"Project ID" required:""`
	Description  string `help:"Task description"`
	AssignedToID int    `help:"Assignee user ID (a developer)"`
	Sprint       string `help:"Sprint label"`
	DueDate      string `help:"Due date (YYYY-MM-DD)"`
}

func (c *TasksCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksManage); err != nil {
		return err
	}

	t, err := a.client.CreateTask(ctx, api.TaskInput{
		Project:      c.Project,
		Title:        c.Title,
		Description:  c.Description,
		AssignedToID: c.AssignedToID,
		Sprint:       c.Sprint,
		DueDate:      c.DueDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("Task %q created with ID %d.\n", t.Title, t.ID)
	return nil
}

// TasksUpdateCmd patches a task.
type TasksUpdateCmd struct {
	ID           int    `arg:"" help:"Task ID"`
	Title        string `help:"New title"`
	Description  string `help:"New description"`
	AssignedToID int    `help:"New assignee user ID"`
	Sprint       string `help:"New sprint label"`
	DueDate      string `help:"New due date (YYYY-MM-DD)"`
	GithubPRURL  string `name:"github-pr-url" help:"Pull request URL"`
}

func (c *TasksUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksManage); err != nil {
		return err
	}

	t, err := a.client.UpdateTask(ctx, c.ID, api.TaskInput{
		Title:        c.Title,
		Description:  c.Description,
		AssignedToID: c.AssignedToID,
		Sprint:       c.Sprint,
		DueDate:      c.DueDate,
		GithubPRURL:  c.GithubPRURL,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task %q updated.\n", t.Title)
	return nil
}

// TasksDeleteCmd deletes a task.
type TasksDeleteCmd struct {
	ID int `arg:"" help:"Task ID"`
}

func (c *TasksDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksManage); err != nil {
		return err
	}

	if err := a.client.DeleteTask(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Task %d deleted.\n", c.ID)
	return nil
}

// TasksAdvanceCmd moves a task one step along TODO → IN_PROGRESS →
// REVIEW → DONE. Developers may advance their own assigned tasks.
type TasksAdvanceCmd struct {
	ID int `arg:"" help:"Task ID"`
}

func (c *TasksAdvanceCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	sess, err := a.requirePermission(policy.PermTasksAdvance)
	if err != nil {
		return err
	}

	task, err := a.client.GetTask(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	// Developers can only move their own tasks; the other roles may
	// advance any task they can see.
	if sess.Role == policy.RoleDev {
		if task.AssignedTo == nil || task.AssignedTo.ID != sess.UserID {
			return fmt.Errorf("task %d is not assigned to you", c.ID)
		}
	}

	if task.Status == api.TaskDone {
		fmt.Printf("Task %q is already done.\n", task.Title)
		return nil
	}

	updated, err := a.client.UpdateTask(ctx, c.ID, api.TaskInput{Status: task.Status.Next()})
	if err != nil {
		return fmt.Errorf("failed to advance task: %w", err)
	}

	fmt.Printf("Task %q moved to %s.\n", updated.Title, updated.Status)
	return nil
}

// TasksCommentCmd adds a comment to a task.
type TasksCommentCmd struct {
	ID   int    `arg:"" help:"Task ID"`
	Body string `arg:"" help:"Comment text"`
}

func (c *TasksCommentCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermTasksView); err != nil {
		return err
	}

	if _, err := a.client.CreateComment(ctx, api.CommentInput{Task: c.ID, Body: c.Body}); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	fmt.Println("Comment added.")
	return nil
}
