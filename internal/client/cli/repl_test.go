package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	calls []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) List(ctx context.Context) error      { return s.record("list") }
func (s *stubExec) Submit(ctx context.Context) error    { return s.record("submit") }
func (s *stubExec) Delete(ctx context.Context) error    { return s.record("delete") }
func (s *stubExec) Candle(ctx context.Context) error    { return s.record("candle") }
func (s *stubExec) CandleAll(ctx context.Context) error { return s.record("candleall") }
func (s *stubExec) Refresh(ctx context.Context) error   { return s.record("refresh") }
func (s *stubExec) Stats(ctx context.Context) error     { return s.record("stats") }
func (s *stubExec) Clear(ctx context.Context) error     { return s.record("clear") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(t *testing.T, script string) (*stubExec, *[]string) {
	t.Helper()
	out := captureOutput(t)
	stub := &stubExec{}
	reader := bufio.NewReader(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "online, 0 tributes" }, reader)
	return stub, out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	stub, _ := runScript(t, "list\nsubmit\ndelete\ncandle\ncandleall\nrefresh\nstats\nclear\nexit\n")
	assert.Equal(t, []string{"list", "submit", "delete", "candle", "candleall", "refresh", "stats", "clear"}, stub.calls)
}

func TestRunREPL_ShortAlias(t *testing.T) {
	stub, _ := runScript(t, "l\nexit\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestRunREPL_UnknownCommandReported(t *testing.T) {
	stub, out := runScript(t, "dance\nexit\n")
	assert.Empty(t, stub.calls)

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Unknown command: dance")
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	stub, _ := runScript(t, "\n\nlist\nexit\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	stub, _ := runScript(t, "list\n") // no exit; input runs dry
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	stub, _ := runScript(t, "list") // EOF right after the command
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestRunREPL_HelpListsCommands(t *testing.T) {
	_, out := runScript(t, "help\nexit\n")
	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "submit")
	assert.Contains(t, joined, "candleall")
}
