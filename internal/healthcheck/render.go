package healthcheck

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nodewatchhq/nodewatch/internal/channel"
)

// ReportHeader prefixes every rendered report.
const ReportHeader = "Healthcheck results:"

const (
	markerSuccess     = "✅"
	markerSoftFailure = "⚠️"
	markerHardFailure = "❌"
)

// RenderReport renders one report into the chat reply for a healthcheck
// command: a fixed header, then one line per node in report order,
// blank-line separated. Node identities and failure reasons pass
// through the markdown escaping rules, so arbitrary reason text can
// never break the reply's markup.
func RenderReport(report Report) channel.Reply {
	var b strings.Builder
	b.WriteString(ReportHeader)
	for _, result := range report {
		b.WriteString("\n\n")
		b.WriteString(renderResult(result))
	}
	return channel.Reply{Text: b.String(), Format: channel.MessageFormatMarkdown}
}

// renderResult maps one outcome onto its display line. 200 is the only
// status rendered as success; any other response is a soft failure and
// no response at all is a hard failure.
func renderResult(r Result) string {
	identity := "`" + channel.EscapeMarkdownCode(r.Node.String()) + "`"
	if code, ok := r.Outcome.StatusCode(); ok {
		if code == http.StatusOK {
			return fmt.Sprintf("%s %s responded with SUCCESS", markerSuccess, identity)
		}
		return fmt.Sprintf("%s %s responded with %d HTTP status code", markerSoftFailure, identity, code)
	}
	reason, _ := r.Outcome.FailureReason()
	return fmt.Sprintf("%s %s failed with error: %s", markerHardFailure, identity, channel.EscapeMarkdown(reason))
}
