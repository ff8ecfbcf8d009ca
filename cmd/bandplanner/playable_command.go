package main

import (
	"context"

	"github.com/spf13/cobra"

	"bandplanner/internal/playability"
	"bandplanner/internal/roster"
)

func newPlayableCommand(ctx *commandContext) *cobra.Command {
	var available []string
	var everyone bool
	var jsonOutput bool
	var onlyPlayable bool

	cmd := &cobra.Command{
		Use:   "playable",
		Short: "Show songs grouped by how many required members are missing",
		Long: "Show every song grouped by the number of required members who are not\n" +
			"available. Mark members available with --available (name or id) or --all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(_ context.Context, model *roster.Model) error {
				if everyone {
					ids := make([]string, 0)
					for _, member := range model.Members() {
						ids = append(ids, member.ID)
					}
					model.SetAvailable(ids...)
				} else {
					ids, err := resolveMemberIDs(model, available)
					if err != nil {
						return err
					}
					model.SetAvailable(ids...)
				}

				out := cmd.OutOrStdout()
				if onlyPlayable {
					songs := playability.Playable(playability.Compute(model.Songs(), model.Availability()))
					if jsonOutput {
						views := make([]songView, 0, len(songs))
						for _, song := range songs {
							views = append(views, buildSongView(model, song))
						}
						return writeJSON(cmd, views)
					}
					renderPlayableTitles(out, songs)
					return nil
				}

				view := buildPlayableView(model)
				if jsonOutput {
					return writeJSON(cmd, view)
				}
				renderPlayable(out, view, shouldColorize(out))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&available, "available", "a", nil, "Member who is available (name or id)")
	cmd.Flags().BoolVar(&everyone, "all", false, "Treat every member as available")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&onlyPlayable, "only-playable", false, "List only songs with every required member available")
	cmd.MarkFlagsMutuallyExclusive("available", "all")
	return cmd
}
