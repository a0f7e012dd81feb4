package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/podcastpixels/podcastpixels/internal/types"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output container formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Format", "Extension", "Faststart"})
			for _, f := range types.Formats() {
				fast := ""
				if f.SupportsFastStart() {
					fast = "yes"
				}
				t.AppendRow(table.Row{string(f), f.Ext(), fast})
			}
			t.Render()
		},
	}
}
