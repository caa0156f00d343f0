package healthcheck

import (
	"strings"
	"testing"

	"github.com/nodewatchhq/nodewatch/internal/channel"
	"github.com/nodewatchhq/nodewatch/internal/node"
)

func TestRenderReportFullOutput(t *testing.T) {
	t.Parallel()

	report := Report{
		{Node: node.New("127.0.0.1", 8080), Outcome: Responded(200)},
		{Node: node.New("10.0.0.1", 6996), Outcome: Failed("connection refused")},
	}
	reply := RenderReport(report)

	want := "Healthcheck results:\n\n" +
		"✅ `127.0.0.1:8080` responded with SUCCESS\n\n" +
		"❌ `10.0.0.1:6996` failed with error: connection refused"
	if reply.Text != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", reply.Text, want)
	}
	if reply.Format != channel.MessageFormatMarkdown {
		t.Fatalf("expected markdown format, got %q", reply.Format)
	}
}

func TestRenderSuccessLine(t *testing.T) {
	t.Parallel()

	reply := RenderReport(Report{{Node: node.New("127.0.0.1", 8080), Outcome: Responded(200)}})
	if !strings.Contains(reply.Text, "✅") {
		t.Fatal("success marker missing")
	}
	if !strings.Contains(reply.Text, "responded with SUCCESS") {
		t.Fatal("success wording missing")
	}
	if strings.Contains(reply.Text, "failed with error") {
		t.Fatal("success line carries error text")
	}
}

func TestRenderSoftFailureIncludesStatusCode(t *testing.T) {
	t.Parallel()

	reply := RenderReport(Report{{Node: node.New("127.0.0.1", 8080), Outcome: Responded(503)}})
	if !strings.Contains(reply.Text, "⚠️") {
		t.Fatal("soft-failure marker missing")
	}
	if !strings.Contains(reply.Text, "responded with 503 HTTP status code") {
		t.Fatalf("status code missing from line: %q", reply.Text)
	}
}

func TestRenderHardFailureEscapesReason(t *testing.T) {
	t.Parallel()

	reason := "dial tcp 10.0.0.1:6996: connect: connection refused"
	reply := RenderReport(Report{{Node: node.New("10.0.0.1", 6996), Outcome: Failed(reason)}})
	if !strings.Contains(reply.Text, "❌") {
		t.Fatal("hard-failure marker missing")
	}
	if !strings.Contains(reply.Text, "failed with error: dial tcp 10\\.0\\.0\\.1:6996: connect: connection refused") {
		t.Fatalf("reason not escaped for markdown: %q", reply.Text)
	}
}

func TestRenderReasonCannotBreakMarkup(t *testing.T) {
	t.Parallel()

	reply := RenderReport(Report{{Node: node.New("h", 1), Outcome: Failed("boom *bold* _it_ [x](y)!")}})
	if !strings.Contains(reply.Text, "boom \\*bold\\* \\_it\\_ \\[x\\]\\(y\\)\\!") {
		t.Fatalf("reserved punctuation leaked unescaped: %q", reply.Text)
	}
}

func TestRenderKeepsReportOrder(t *testing.T) {
	t.Parallel()

	report := Report{
		{Node: node.New("a", 1), Outcome: Responded(200)},
		{Node: node.New("b", 2), Outcome: Responded(404)},
		{Node: node.New("c", 3), Outcome: Failed("x")},
	}
	text := RenderReport(report).Text
	ia := strings.Index(text, "`a:1`")
	ib := strings.Index(text, "`b:2`")
	ic := strings.Index(text, "`c:3`")
	if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
		t.Fatalf("lines out of order: %q", text)
	}
}
