package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veerladharma/news-aggregator/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		sess, err := session.Load(e.store, e.log)
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, describeSession(sess))

		path := e.cfg.StoreFile()
		if info, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Storage: %s (%s)\n", path, formatBytes(info.Size()))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := session.Clear(e.store); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func describeSession(sess session.Session) string {
	if !sess.Active() {
		return "Not logged in.\n"
	}
	u := sess.User
	s := fmt.Sprintf("%s <%s>\n", u.DisplayName("User"), u.Email)
	if u.Role != "" {
		s += fmt.Sprintf("Role: %s\n", u.Role)
	}
	return s
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
