package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/support"
)

var evalCasesFile string

type evalCase struct {
	Query              string
	ExpectedIntent     intent.Label
	ExpectedEscalation bool
}

type evalReport struct {
	Total             int
	IntentCorrect     int
	EscalationCorrect int
	Misses            []string
}

func (r *evalReport) record(c evalCase, o support.Outcome) {
	r.Total++
	intentOK := o.Intent == c.ExpectedIntent
	escalationOK := o.Escalate == c.ExpectedEscalation
	if intentOK {
		r.IntentCorrect++
	}
	if escalationOK {
		r.EscalationCorrect++
	}
	if !intentOK || !escalationOK {
		r.Misses = append(r.Misses, fmt.Sprintf("%q: intent %s (want %s), escalate %v (want %v)",
			c.Query, o.Intent, c.ExpectedIntent, o.Escalate, c.ExpectedEscalation))
	}
}

func (r evalReport) accuracy(correct int) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(correct) / float64(r.Total)
}

// NewEvalCmd creates the eval command.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure routing accuracy against labelled queries",
		Long: `Route every query of a CSV file on a fresh conversation and compare the
chosen intent and escalation flag with the expected ones.

The file has the header query,expected_intent,expected_escalation.

Examples:
  supportctl eval --cases evaluation/test_cases.csv`,
		Args: cobra.NoArgs,
		RunE: runEval,
	}

	cmd.Flags().StringVar(&evalCasesFile, "cases", "", "CSV file of evaluation cases")
	_ = cmd.MarkFlagRequired("cases")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(evalCasesFile)
	if err != nil {
		return fmt.Errorf("opening cases: %w", err)
	}
	defer f.Close()

	cases, err := parseCases(f)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var report evalReport
	for _, c := range cases {
		out, err := a.Support.Route(ctx, support.RouteInput{
			ConversationID: "eval-" + uuid.NewString(),
			Text:           c.Query,
		})
		if err != nil {
			return fmt.Errorf("routing %q: %w", c.Query, err)
		}
		report.record(c, out.Outcome)
	}

	w := cmd.OutOrStdout()
	for _, miss := range report.Misses {
		fmt.Fprintln(w, "MISS", miss)
	}
	fmt.Fprintf(w, "cases:               %d\n", report.Total)
	fmt.Fprintf(w, "intent accuracy:     %.2f\n", report.accuracy(report.IntentCorrect))
	fmt.Fprintf(w, "escalation accuracy: %.2f\n", report.accuracy(report.EscalationCorrect))
	return nil
}

// parseCases reads query,expected_intent,expected_escalation rows. The
// header row is required.
func parseCases(r io.Reader) ([]evalCase, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("cases file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"query", "expected_intent", "expected_escalation"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var cases []evalCase
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		label, ok := intent.ParseLabel(row[cols["expected_intent"]])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown intent %q", line, row[cols["expected_intent"]])
		}
		escalate, err := strconv.ParseBool(strings.TrimSpace(row[cols["expected_escalation"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: expected_escalation: %w", line, err)
		}

		cases = append(cases, evalCase{
			Query:              row[cols["query"]],
			ExpectedIntent:     label,
			ExpectedEscalation: escalate,
		})
	}
	return cases, nil
}
