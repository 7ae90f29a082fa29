package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quoteboard/internal/db"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy both collections into a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, cr := a.readers()
			posts, err := pr.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("posts: %w", err)
			}
			contacts, err := cr.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("contacts: %w", err)
			}

			dbc, err := db.Open(out)
			if err != nil {
				return err
			}
			defer dbc.Close()

			if err := db.Migrate(dbc); err != nil {
				return err
			}
			if err := db.Export(cmd.Context(), dbc, posts, contacts); err != nil {
				return err
			}

			a.log.Info(cmd.Context(), "exported", "db", out, "posts", len(posts), "contacts", len(contacts))
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d posts and %d contacts to %s\n", len(posts), len(contacts), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "board.db", "SQLite database to write")
	cmd.Flags().String("data-dir", "./data", "directory holding posts.json and contacts.json")
	return cmd
}
