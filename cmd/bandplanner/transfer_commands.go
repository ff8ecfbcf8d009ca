package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bandplanner/internal/config"
	"bandplanner/internal/roster"
	"bandplanner/internal/snapshot"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export members and songs as JSON",
		Long: "Export members and songs to " + snapshot.FileName + " in the current directory.\n" +
			"Use --output to pick another path or - for stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(_ context.Context, model *roster.Model) error {
				snap := model.Snapshot()
				target := strings.TrimSpace(outputPath)
				if target == "-" {
					return snapshot.Export(cmd.OutOrStdout(), snap)
				}
				if target == "" {
					target = snapshot.FileName
				}
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve export path: %w", err)
				}
				if err := snapshot.WriteFile(expanded, snap); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s and %s to %s\n",
					pluralize(len(snap.Members), "member", "members"),
					pluralize(len(snap.Songs), "song", "songs"),
					expanded)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (- for stdout)")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace members and songs with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				snap, err := snapshot.ReadFile(c, path)
				if err != nil {
					return err
				}
				if err := model.ReplaceAll(c, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s and %s from %s\n",
					pluralize(len(snap.Members), "member", "members"),
					pluralize(len(snap.Songs), "song", "songs"),
					path)
				return nil
			})
		},
	}
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every member and song",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				snap := model.Snapshot()
				if err := model.Reset(c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s and %s\n",
					pluralize(len(snap.Members), "member", "members"),
					pluralize(len(snap.Songs), "song", "songs"))
				return nil
			})
		},
	}
}
