package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"customer-support-agent/internal/support"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <conversation-id>",
		Short: "Show the stored transcript of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Support.GetConversation(ctx, support.GetConversationInput{ConversationID: args[0]})
	if errors.Is(err, support.ErrConversationNotFound) {
		return fmt.Errorf("conversation %s not found", args[0])
	}
	if err != nil {
		return err
	}

	printHistory(cmd.OutOrStdout(), out)
	return nil
}

func printHistory(w io.Writer, out support.GetConversationOutput) {
	s := out.State
	for _, m := range s.Messages {
		fmt.Fprintf(w, "[%s] %s\n", m.Role, m.Content)
	}
	fmt.Fprintln(w)
	if s.LastIntent != "" {
		fmt.Fprintf(w, "last intent:   %s\n", s.LastIntent)
	}
	if s.LastDecision != "" {
		fmt.Fprintf(w, "last decision: %s\n", s.LastDecision)
	}
	if s.PendingClarification {
		fmt.Fprintf(w, "pending clarification: %s\n", s.ClarificationQuestion)
	}
	if out.Pending != nil {
		fmt.Fprintf(w, "pending approval: token %s since %s\n",
			out.Pending.Token, out.Pending.RequestedAt.Format("2006-01-02 15:04:05"))
	}
}
