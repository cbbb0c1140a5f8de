package app

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// List writes every task name, in registration order, with its description.
func (a *App) List(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, t := range a.registry.Tasks() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}
