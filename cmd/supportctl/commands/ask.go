package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"customer-support-agent/internal/support"
)

var askConversation string

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Send a message to a conversation",
		Long: `Route one message through the support agent.

Examples:
  supportctl ask --conversation c1 "What is your return policy?"
  supportctl ask --conversation c1 "Where is my order ORD123?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVarP(&askConversation, "conversation", "c", "", "Conversation ID")
	_ = cmd.MarkFlagRequired("conversation")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.Support.Route(ctx, support.RouteInput{
		ConversationID: askConversation,
		Text:           strings.Join(args, " "),
	})
	if err != nil {
		return err
	}

	printOutcome(cmd.OutOrStdout(), out.Outcome)
	if out.Status == support.StatusAwaitingApproval && out.Approval != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nAwaiting approval (token %s, requested %s)\n",
			out.Approval.Token, out.Approval.RequestedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(cmd.OutOrStdout(), "Resolve with: supportctl approve %s | supportctl deny %s\n",
			askConversation, askConversation)
	}
	return nil
}

func printOutcome(w io.Writer, o support.Outcome) {
	fmt.Fprintln(w, o.FinalAnswer)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "decision:   %s\n", o.Decision)
	if o.Intent != "" {
		fmt.Fprintf(w, "intent:     %s\n", o.Intent)
	}
	fmt.Fprintf(w, "confidence: %.2f\n", o.Confidence)
	fmt.Fprintf(w, "escalate:   %v\n", o.Escalate)
	if o.NeedsClarification {
		fmt.Fprintln(w, "clarification requested")
	}
	if o.Sources != "" {
		fmt.Fprintf(w, "sources:\n%s\n", indent(o.Sources, "  "))
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
