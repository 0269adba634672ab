package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"customer-support-agent/internal/support"
)

// NewApproveCmd creates the approve command.
func NewApproveCmd() *cobra.Command {
	return newResolveCmd("approve", "Approve the pending refund of a conversation", true)
}

// NewDenyCmd creates the deny command.
func NewDenyCmd() *cobra.Command {
	return newResolveCmd("deny", "Deny the pending refund of a conversation", false)
}

func newResolveCmd(use, short string, approved bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <conversation-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.Support.Resume(ctx, support.ResumeInput{ConversationID: args[0], Approved: approved})
			if errors.Is(err, support.ErrNoPendingApproval) {
				return fmt.Errorf("conversation %s has no pending approval", args[0])
			}
			if err != nil {
				return err
			}

			printOutcome(cmd.OutOrStdout(), out.Outcome)
			return nil
		},
	}
}
