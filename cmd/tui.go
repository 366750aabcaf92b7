package cmd

import (
	"github.com/spf13/cobra"
	"github.com/veerladharma/news-aggregator/internal/tui"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Launch the admin dashboard",
	Long:  "Open newsagg in the admin view. Same as `newsagg /admin`.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(tui.ViewAdmin)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	return runView(tui.ViewForPath(path))
}

func runView(v tui.View) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	return tui.Run(tui.RunOpts{
		Client: e.client,
		Store:  e.store,
		Log:    e.log,
		View:   v,
	})
}
