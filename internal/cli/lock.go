package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/julianstephens/dawnlock/internal/tui"
	"github.com/julianstephens/dawnlock/internal/utils"
)

// LockCheckCmd exits 0 when unlocked and 2 when locked, so shell integrations
// can gate on the decision without parsing output.
type LockCheckCmd struct{}

func (c *LockCheckCmd) Run(ctx *Context) error {
	locked := ctx.App.Lock.Evaluate(ctx.App.History)
	if locked {
		fmt.Println("locked")
		if remaining := ctx.App.Lock.TimeUntilEmergencyUnlock(); remaining > 0 {
			fmt.Printf("emergency unlock in %s\n", utils.FormatDuration(remaining))
		}
		ctx.Store.Close()
		os.Exit(2)
	}
	fmt.Println("unlocked")
	return nil
}

type LockScreenCmd struct{}

func (c *LockScreenCmd) Run(ctx *Context) error {
	ctx.App.Lock.Evaluate(ctx.App.History)
	if !ctx.App.Lock.IsLocked() {
		fmt.Println("Device is not locked.")
		return nil
	}
	return tui.Run(ctx.App, ctx.ConfigDir())
}

type LockEmergencyCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *LockEmergencyCmd) Run(ctx *Context) error {
	if !ctx.App.Lock.IsLocked() {
		fmt.Println("Device is not locked.")
		return nil
	}
	if remaining := ctx.App.Lock.TimeUntilEmergencyUnlock(); remaining > 0 {
		fmt.Printf("Emergency unlock available in %s.\n", utils.FormatDuration(remaining))
		return nil
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Unlock without finishing the routine?").
				Description("This ends today's session and records nothing.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.App.Lock.EmergencyUnlock(); err != nil {
		return err
	}
	fmt.Println("Emergency unlock granted.")
	return nil
}
