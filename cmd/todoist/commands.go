package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ziyixi/todoist/todoist"
	"github.com/ziyixi/todoist/utils"
)

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "tasks",
			Usage: "List active tasks",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "project", Usage: "only tasks of this project id"},
				&cli.StringFlag{Name: "section", Usage: "only tasks of this section id"},
				&cli.StringFlag{Name: "label", Usage: "only tasks with this label"},
				&cli.StringFlag{Name: "filter", Usage: "Todoist filter query"},
			},
			Action: a.listTasks,
		},
		{
			Name:      "task",
			Usage:     "Show a task",
			ArgsUsage: "<id>",
			Action:    a.showTask,
		},
		{
			Name:      "add",
			Usage:     "Create a task",
			ArgsUsage: "<content>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "project", Usage: "project id"},
				&cli.StringFlag{Name: "section", Usage: "section id"},
				&cli.StringFlag{Name: "due", Usage: "due date in natural language"},
				&cli.IntFlag{Name: "priority", Usage: "priority from 1 (normal) to 4 (urgent)"},
				&cli.StringSliceFlag{Name: "label", Usage: "label name, repeatable"},
				&cli.StringFlag{Name: "description", Usage: "task description"},
				&cli.StringFlag{Name: "description-html", Usage: "task description as HTML, converted to markdown"},
			},
			Action: a.addTask,
		},
		{
			Name:      "quick-add",
			Usage:     "Create a task from free text, parsing dates, projects and labels",
			ArgsUsage: "<text>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "note", Usage: "comment added to the new task"},
			},
			Action: a.quickAdd,
		},
		{
			Name:      "close",
			Usage:     "Complete a task",
			ArgsUsage: "<id>",
			Action:    a.closeTask,
		},
		{
			Name:      "move",
			Usage:     "Move a task to a project, a section or under a parent task",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "project", Usage: "destination project id"},
				&cli.StringFlag{Name: "section", Usage: "destination section id"},
				&cli.StringFlag{Name: "parent", Usage: "destination parent task id"},
			},
			Action: a.moveTask,
		},
		{
			Name:   "projects",
			Usage:  "List projects",
			Action: a.listProjects,
		},
		{
			Name:  "comments",
			Usage: "List the comments of a task or a project",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "task", Usage: "task id"},
				&cli.StringFlag{Name: "project", Usage: "project id"},
			},
			Action: a.listComments,
		},
	}
}

func firstArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() == 0 || cmd.Args().First() == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return cmd.Args().First(), nil
}

func (a *app) listTasks(ctx context.Context, cmd *cli.Command) error {
	client, err := a.todoist()
	if err != nil {
		return err
	}
	tasks, err := client.GetTasks(ctx, todoist.GetTasksArgs{
		ProjectID: cmd.String("project"),
		SectionID: cmd.String("section"),
		Label:     cmd.String("label"),
		Filter:    cmd.String("filter"),
	})
	if err != nil {
		return err
	}
	a.log.Debugf("fetched %d tasks", len(tasks))
	return a.printJSON(tasks)
}

func (a *app) showTask(ctx context.Context, cmd *cli.Command) error {
	id, err := firstArg(cmd, "task id")
	if err != nil {
		return err
	}
	client, err := a.todoist()
	if err != nil {
		return err
	}
	task, err := client.GetTask(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(task)
}

func (a *app) addTask(ctx context.Context, cmd *cli.Command) error {
	content, err := firstArg(cmd, "content")
	if err != nil {
		return err
	}

	description := cmd.String("description")
	if html := cmd.String("description-html"); html != "" {
		if description != "" {
			return fmt.Errorf("--description and --description-html are mutually exclusive")
		}
		description, err = utils.HTMLToMarkdown(html)
		if err != nil {
			return err
		}
	}

	client, err := a.todoist()
	if err != nil {
		return err
	}
	task, err := client.AddTask(ctx, todoist.AddTaskArgs{
		Content:     content,
		Description: description,
		ProjectID:   cmd.String("project"),
		SectionID:   cmd.String("section"),
		DueString:   cmd.String("due"),
		Priority:    int(cmd.Int("priority")),
		Labels:      cmd.StringSlice("label"),
	})
	if err != nil {
		return err
	}
	a.log.WithField("id", task.ID).Info("task created")
	return a.printJSON(task)
}

func (a *app) quickAdd(ctx context.Context, cmd *cli.Command) error {
	text, err := firstArg(cmd, "text")
	if err != nil {
		return err
	}
	client, err := a.todoist()
	if err != nil {
		return err
	}
	task, err := client.QuickAddTask(ctx, todoist.QuickAddTaskArgs{
		Text: text,
		Note: cmd.String("note"),
	})
	if err != nil {
		return err
	}
	a.log.WithField("id", task.ID).Info("task created")
	return a.printJSON(task)
}

func (a *app) closeTask(ctx context.Context, cmd *cli.Command) error {
	id, err := firstArg(cmd, "task id")
	if err != nil {
		return err
	}
	client, err := a.todoist()
	if err != nil {
		return err
	}
	ok, err := client.CloseTask(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]any{"id": id, "closed": ok})
}

func (a *app) moveTask(ctx context.Context, cmd *cli.Command) error {
	id, err := firstArg(cmd, "task id")
	if err != nil {
		return err
	}
	client, err := a.todoist()
	if err != nil {
		return err
	}

	err = client.MoveTask(id, todoist.MoveTaskArgs{
		ProjectID: cmd.String("project"),
		SectionID: cmd.String("section"),
		ParentID:  cmd.String("parent"),
	})
	if err != nil {
		return err
	}
	ok, err := client.Sync(ctx)
	if err != nil {
		// Nothing else will flush the queue once the process exits
		client.DiscardPending()
		return err
	}
	return a.printJSON(map[string]any{"id": id, "moved": ok})
}

func (a *app) listProjects(ctx context.Context, _ *cli.Command) error {
	client, err := a.todoist()
	if err != nil {
		return err
	}
	projects, err := client.GetProjects(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(projects)
}

func (a *app) listComments(ctx context.Context, cmd *cli.Command) error {
	client, err := a.todoist()
	if err != nil {
		return err
	}
	comments, err := client.GetComments(ctx, todoist.GetCommentsArgs{
		TaskID:    cmd.String("task"),
		ProjectID: cmd.String("project"),
	})
	if err != nil {
		return err
	}
	return a.printJSON(comments)
}
