package report

import (
	"fmt"
	"strings"

	"github.com/berkayda/hawkeye-public/internal/domain"
)

// spikeDateLayout DD-MM-YYYY
const spikeDateLayout = "02-01-2006"

// SpikeAlert formats the Telegram markdown alert for a spike verdict.
func SpikeAlert(ticker, period string, verdict domain.SpikeVerdict) string {
	date := "n/a"
	if verdict.SpikeDate.Valid {
		date = verdict.SpikeDate.Time.Format(spikeDateLayout)
	}
	return fmt.Sprintf("_Spike Volume signal for_ *%s (%s)* \n_Spike Signal Date: %s_",
		escapeMarkdown(ticker), escapeMarkdown(period), date)
}

// StageFailure formats the Telegram markdown message for a failed stage.
func StageFailure(stage string, err error) string {
	if stage == domain.StageSchedule {
		return fmt.Sprintf("_(Hawkeye)_ *time condition error: * \n\n _%s_", escapeItalic(err))
	}
	return fmt.Sprintf("*%s ERROR:* \n\n _%s_", stage, escapeItalic(err))
}

// markdownEscaper escapes the legacy Telegram Markdown entity markers.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown keeps s from opening or closing the surrounding span.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func escapeItalic(err error) string {
	if err == nil {
		return "unknown error"
	}
	return escapeMarkdown(err.Error())
}
