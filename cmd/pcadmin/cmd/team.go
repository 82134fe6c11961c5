package cmd

import (
	"fmt"
	"strconv"

	"github.com/led-dino/playacamp/pkg/teams"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	teamDescription string
	teamMaxSize     int
	teamEarlyCrew   bool
	teamLateCrew    bool
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List, create and delete teams",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams, emptiest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := teams.NewRegistry(mustOpenStors().TeamStor)
		all, err := registry.OrderedByRemainingSpace()
		if err != nil {
			return err
		}

		for _, t := range all {
			crew := ""
			switch {
			case t.IsEarlyCrew && t.IsLateCrew:
				crew = " [early+late crew]"
			case t.IsEarlyCrew:
				crew = " [early crew]"
			case t.IsLateCrew:
				crew = " [late crew]"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d/%d%s\n", t.ID, t.Slug, t.MemberCount, t.MaxSize, crew)
		}

		return nil
	},
}

var teamCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nt := teams.NewTeam{
			Name:        args[0],
			Description: teamDescription,
			IsEarlyCrew: teamEarlyCrew,
			IsLateCrew:  teamLateCrew,
		}

		if cmd.Flags().Changed("max-size") {
			nt.MaxSize = &teamMaxSize
		}

		team, err := teams.NewRegistry(mustOpenStors().TeamStor).CreateTeam(nt)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created team %d (%s)\n", team.ID, team.Slug)
		return nil
	},
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a team and its memberships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid team id %s", args[0])
		}

		return teams.NewRegistry(mustOpenStors().TeamStor).DeleteTeam(teamID)
	},
}

func init() {
	teamCreateCmd.Flags().StringVarP(&teamDescription, "description", "d", "", "Team description")
	teamCreateCmd.Flags().IntVar(&teamMaxSize, "max-size", teams.DefaultMaxSize, "Most members the team takes")
	teamCreateCmd.Flags().BoolVar(&teamEarlyCrew, "early-crew", false, "Early arrivals join this team")
	teamCreateCmd.Flags().BoolVar(&teamLateCrew, "late-crew", false, "Late departures join this team")

	teamCmd.AddCommand(teamListCmd, teamCreateCmd, teamDeleteCmd)
	rootCmd.AddCommand(teamCmd)
}
