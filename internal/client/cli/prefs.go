package cli

import (
	"context"
	"fmt"
)

// Prefs prints the notification preferences.
func (a *App) Prefs(ctx context.Context) error {
	p, err := a.prefs.Get(ctx)
	if err != nil {
		return err
	}
	for _, name := range p.Names() {
		v, _ := p.Value(name)
		fmt.Fprintf(a.out, "  %-20s %s\n", name, onOff(v))
	}
	return nil
}

// Toggle flips one notification preference.
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: toggle <name>")
	}
	v, err := a.prefs.Toggle(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", args[0], onOff(v))
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
