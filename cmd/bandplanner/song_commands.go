package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bandplanner/internal/roster"
)

func newSongCommand(ctx *commandContext) *cobra.Command {
	songCmd := &cobra.Command{
		Use:     "song",
		Aliases: []string{"songs"},
		Short:   "Manage songs and the members they need",
	}

	songCmd.AddCommand(newSongAddCommand(ctx))
	songCmd.AddCommand(newSongListCommand(ctx))
	songCmd.AddCommand(newSongRemoveCommand(ctx))

	return songCmd
}

func newSongAddCommand(ctx *commandContext) *cobra.Command {
	var needs []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a song",
		Long: "Add a song. Use --needs (repeatable or comma separated) to list the members,\n" +
			"by name or id, who must be present to play it.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				ids, err := resolveMemberIDs(model, needs)
				if err != nil {
					return err
				}
				song, added, err := model.AddSong(c, strings.Join(args, " "), ids)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !added {
					fmt.Fprintln(out, "Song title is blank; nothing added")
					return nil
				}
				fmt.Fprintf(out, "Added song %s (needs %s)\n", song.Title, joinOrDash(model.MemberNames(song.RequiredMembers)))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&needs, "needs", "n", nil, "Member required to play the song (name or id)")
	return cmd
}

func newSongListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(_ context.Context, model *roster.Model) error {
				views := buildSongViews(model)
				if jsonOutput {
					return writeJSON(cmd, views)
				}
				renderSongs(cmd.OutOrStdout(), views)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSongRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <title|id>",
		Aliases: []string{"rm"},
		Short:   "Remove a song",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				song, err := model.FindSong(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if err := model.RemoveSong(c, song.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed song %s\n", song.Title)
				return nil
			})
		},
	}
}
