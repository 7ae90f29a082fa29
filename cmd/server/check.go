package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load both collections and report problems",
		Long: `check reads the posts and contacts files the same way the server does and
reports record counts and duplicate post ids. A missing posts file reports
the seed posts that would be written on first start.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, cs := a.postStore(), a.contactStore()

			posts, err := ps.Load()
			if err != nil {
				return fmt.Errorf("posts: %w", err)
			}
			contacts, err := cs.Load()
			if err != nil {
				return fmt.Errorf("contacts: %w", err)
			}

			out := cmd.OutOrStdout()
			state := "present"
			if !ps.Exists() {
				state = "missing, seeds shown"
			}
			fmt.Fprintf(out, "posts:    %d (%s, %s)\n", len(posts), ps.Path(), state)
			fmt.Fprintf(out, "contacts: %d (%s)\n", len(contacts), cs.Path())

			seen := make(map[string]int, len(posts))
			var dups []string
			for _, p := range posts {
				seen[p.ID]++
				if seen[p.ID] == 2 {
					dups = append(dups, p.ID)
				}
			}
			if len(dups) > 0 {
				return fmt.Errorf("duplicate post ids: %v", dups)
			}
			return nil
		},
	}
	cmd.Flags().String("data-dir", "./data", "directory holding posts.json and contacts.json")
	return cmd
}
