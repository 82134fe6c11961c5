package cmd

import (
	"fmt"

	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verifyReject bool
	verifyClear  bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <username>",
	Short: "Mark a user's profile as verified by an admin",
	Long: `Mark a user's profile as verified. --reject marks it as reviewed and not
verified, --clear puts it back to not yet reviewed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verifyReject && verifyClear {
			return errors.New("--reject and --clear can't be used together")
		}

		var verified *bool
		if !verifyClear {
			v := !verifyReject
			verified = &v
		}

		stors := mustOpenStors()
		user, err := stors.UserStor.GetUserByUsername(args[0])
		if err != nil {
			return err
		}

		p, err := profile.NewService(stors.ProfileStor, stors.CatalogStor).SetVerified(user.ID, verified)
		if err != nil {
			return err
		}

		status := "not reviewed"
		if p.IsVerifiedByAdmin != nil {
			status = fmt.Sprintf("verified=%t", *p.IsVerifiedByAdmin)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", user.Username, status)
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyReject, "reject", false, "Mark the profile as not verified")
	verifyCmd.Flags().BoolVar(&verifyClear, "clear", false, "Mark the profile as not yet reviewed")
	rootCmd.AddCommand(verifyCmd)
}
