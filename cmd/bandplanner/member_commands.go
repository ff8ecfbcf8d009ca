package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bandplanner/internal/roster"
)

func newMemberCommand(ctx *commandContext) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members"},
		Short:   "Manage band members",
	}

	memberCmd.AddCommand(newMemberAddCommand(ctx))
	memberCmd.AddCommand(newMemberListCommand(ctx))
	memberCmd.AddCommand(newMemberRemoveCommand(ctx))

	return memberCmd
}

func newMemberAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a band member",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				member, added, err := model.AddMember(c, strings.Join(args, " "))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !added {
					fmt.Fprintln(out, "Member name is blank; nothing added")
					return nil
				}
				fmt.Fprintf(out, "Added member %s (%s)\n", member.Name, member.ID)
				return nil
			})
		},
	}
}

func newMemberListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List band members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(_ context.Context, model *roster.Model) error {
				views := buildMemberViews(model)
				if jsonOutput {
					return writeJSON(cmd, views)
				}
				renderMembers(cmd.OutOrStdout(), views)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newMemberRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name|id>",
		Aliases: []string{"rm"},
		Short:   "Remove a member and drop them from every song",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				member, err := model.FindMember(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if err := model.RemoveMember(c, member.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed member %s\n", member.Name)
				return nil
			})
		},
	}
}
