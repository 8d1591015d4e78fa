package cli

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/dmitrijs2005/taskmaster/internal/client/models"
)

const defaultPageSize = 100

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := getOptionalText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, models.TaskInput{Title: title, Description: description})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created task %s\n", task.ID)
	return nil
}

// List prints one page of tasks. args are the optional skip and limit.
func (a *App) List(ctx context.Context, args []string) error {
	skip, limit := 0, defaultPageSize

	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("skip must be a non-negative integer")
		}
		skip = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			return fmt.Errorf("limit must be a non-negative integer")
		}
		limit = v
	}

	tasks, err := a.api.ListTasks(ctx, skip, limit)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(a.out, t.String())
	}
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	task, err := a.api.GetTask(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:          %s\n", task.ID)
	fmt.Fprintf(a.out, "Title:       %s\n", html.UnescapeString(task.Title))
	if task.Description != nil {
		fmt.Fprintf(a.out, "Description: %s\n", html.UnescapeString(*task.Description))
	}
	fmt.Fprintf(a.out, "Created:     %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// Edit replaces title and description. Empty answers keep the current
// values; "-" clears the description. Stored values come back escaped, so
// kept values are unescaped before being sent again.
func (a *App) Edit(ctx context.Context, id string) error {
	current, err := a.api.GetTask(ctx, id)
	if err != nil {
		return err
	}

	in := models.TaskInput{Title: html.UnescapeString(current.Title)}
	if current.Description != nil {
		d := html.UnescapeString(*current.Description)
		in.Description = &d
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title [%s]", in.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		in.Title = title
	}

	description, err := getOptionalText(a.reader, "Enter description (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	switch {
	case description == nil:
	case *description == "-":
		in.Description = nil
	default:
		in.Description = description
	}

	if _, err := a.api.UpdateTask(ctx, id, in); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated task %s\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted task %s\n", id)
	return nil
}
