package cli

import (
	"fmt"

	"github.com/julianstephens/dawnlock/internal/models"
)

type MarkCmd struct {
	Item string `arg:"" help:"Routine item identifier (see 'dawnlock items')."`
}

func (c *MarkCmd) Run(ctx *Context) error {
	item, err := models.ParseRoutineItem(c.Item)
	if err != nil {
		return err
	}
	if err := ctx.App.MarkComplete(item); err != nil {
		return err
	}
	fmt.Printf("Marked: %s\n", item.Label())
	if ctx.App.Checklist.IsComplete() {
		fmt.Println("Routine complete for today!")
	}
	return nil
}

type UnmarkCmd struct {
	Item string `arg:"" help:"Routine item identifier."`
}

func (c *UnmarkCmd) Run(ctx *Context) error {
	item, err := models.ParseRoutineItem(c.Item)
	if err != nil {
		return err
	}
	if err := ctx.App.Checklist.MarkIncomplete(item); err != nil {
		return err
	}
	fmt.Printf("Unmarked: %s\n", item.Label())
	return nil
}

type ToggleCmd struct {
	Item string `arg:"" help:"Routine item identifier."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	item, err := models.ParseRoutineItem(c.Item)
	if err != nil {
		return err
	}
	if err := ctx.App.Toggle(item); err != nil {
		return err
	}
	state := "incomplete"
	if ctx.App.Checklist.IsCompleted(item) {
		state = "complete"
	}
	fmt.Printf("%s is now %s\n", item.Label(), state)
	return nil
}

type ResetCmd struct {
	Force bool `help:"Reset even if today's reset already happened."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if c.Force {
		ctx.App.Checklist.Reset()
		fmt.Println("Checklist reset.")
		return nil
	}
	if ctx.App.Checklist.ResetIfDue(ctx.App.Settings.ResetTimeForToday()) {
		fmt.Println("Checklist reset.")
	} else {
		fmt.Println("Already reset for today. Use --force to reset again.")
	}
	return nil
}

type ItemsCmd struct{}

func (c *ItemsCmd) Run(ctx *Context) error {
	for _, item := range models.AllRoutineItems() {
		fmt.Printf("%-16s %s\n", item, item.Label())
	}
	return nil
}
