// Package alerting renders and delivers sale-opportunity alerts.
package alerting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Notification carries the context of one sale-opportunity alert.
type Notification struct {
	Cycle           time.Time
	BondID          string
	Issuer          string
	SaleProbability int
	Confidence      int
	ThresholdPct    float64
	ExpectedTiming  string
	Recommendation  string
	Channels        []string
	AdditionalMsg   string
}

// Notifier delivers alerts to a channel.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// LogNotifier writes alerts to the structured log. The demo platform has no
// outbound delivery channel, so the log is the terminal sink.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier constructs a log-backed notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "alert_log").Logger()}
}

// Notify emits the rendered alert at warn level so it stands out from the
// per-cycle info output.
func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.logger.Warn().
		Time("cycle", note.Cycle).
		Str("bond", note.BondID).
		Int("sale_probability", note.SaleProbability).
		Float64("threshold_pct", note.ThresholdPct).
		Str("channels", strings.Join(note.Channels, ",")).
		Msg(renderMessage(note))
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[Sale Opportunity]\n")
	builder.WriteString(fmt.Sprintf("Cycle: %s UTC\n", note.Cycle.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Bond: %s (%s)\n", note.Issuer, note.BondID))
	builder.WriteString(fmt.Sprintf("Sale probability: %d%% (threshold %.1f%%)\n", note.SaleProbability, note.ThresholdPct))
	builder.WriteString(fmt.Sprintf("Confidence: %d%%\n", note.Confidence))
	builder.WriteString(fmt.Sprintf("Expected timing: %s\n", note.ExpectedTiming))
	if note.Recommendation != "" {
		builder.WriteString(fmt.Sprintf("Recommendation: %s\n", note.Recommendation))
	}
	if len(note.Channels) > 0 {
		builder.WriteString(fmt.Sprintf("Channels: %s\n", strings.Join(note.Channels, ",")))
	}
	if note.AdditionalMsg != "" {
		builder.WriteString(note.AdditionalMsg)
	}
	return builder.String()
}

var _ Notifier = (*LogNotifier)(nil)
