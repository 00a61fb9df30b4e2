package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hendrix/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return NewSimpleUI(cmd), &out, &errOut
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayInputs_PrintsTable(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	ui.DisplayInputs(testSuppliers())

	assertContains(t, out.String(),
		"CLASS FILE",
		"classes/com/example/Box.class",
		"lib/rt.jar!/java/util/List.class",
		"rewrite",
		"classpath",
		"TOTAL 2",
	)
}

func TestSimpleUI_DisplayInputs_Empty(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	ui.DisplayInputs(nil)

	assertContains(t, out.String(), "No class files found")
}

func TestSimpleUI_DisplayMappings_PrintsTable(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	ui.DisplayMappings(testMappings())

	assertContains(t, out.String(),
		"class",
		"field",
		"com/example/Box",
		"com/example/Box/items",
		"java.util.List<java.lang.String>",
		"TOTAL 2",
	)
}

func TestSimpleUI_DisplayProviderError(t *testing.T) {
	ui, out, errOut := newTestSimpleUI()

	ui.DisplayProviderError("mappings.txt", errors.New("boom"))

	assertContains(t, errOut.String(), "mapping provider mappings.txt skipped: boom")

	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", out.String())
	}
}

func TestSimpleUI_DisplayRunInfo(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	ui.DisplayRunInfo(RunInfo{Files: 3, Threads: 2, Mappings: 4, DryRun: true, ShardIndex: 1, ShardCount: 2})

	assertContains(t, out.String(), "3 class file(s)", "2 worker(s)", "4 mapping(s)", "shard 1/2", "(dry run)")
}

func TestSimpleUI_DisplayFileCompleted(t *testing.T) {
	ui, out, errOut := newTestSimpleUI()
	origin := m.Origin{Path: "lib.jar", Entry: "com/example/Box.class"}

	ui.DisplayFileStarted(origin, 0)
	ui.DisplayFileCompleted(m.FileResult{Origin: origin, Applied: 1, Changed: true})

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Fatalf("clean result printed output: %q %q", out.String(), errOut.String())
	}

	conflict := m.Conflict{
		Origin:   origin,
		Element:  m.KindClass,
		Name:     "com/example/Box",
		Existing: "Ljava/lang/Object;",
		Override: "Ljava/util/List<Ljava/lang/String;>;",
	}

	ui.DisplayFileCompleted(m.FileResult{Origin: origin, Conflicts: []m.Conflict{conflict}})
	ui.DisplayFileCompleted(m.FileResult{Origin: origin, Err: errors.New("decode lib.jar!/com/example/Box.class: truncated")})

	assertContains(t, errOut.String(),
		"warning: lib.jar!/com/example/Box.class: class com/example/Box",
		"error: decode lib.jar!/com/example/Box.class: truncated",
	)
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	ui.DisplaySummary(m.Summary{
		Total:     5,
		Changed:   2,
		Unchanged: 1,
		Skipped:   1,
		Failed:    1,
		Applied:   3,
		Conflicts: 1,
		DryRun:    true,
		Duration:  1500 * time.Millisecond,
	})

	assertContains(t, out.String(),
		"Would change",
		"Unchanged",
		"TOTAL",
		"5",
		"3 override(s) applied, 1 conflict(s), 1.5s",
	)
}

func TestSimpleUI_Lifecycle(t *testing.T) {
	ui, out, _ := newTestSimpleUI()

	if err := ui.Start(WithRunMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.Close()
	ui.Wait()

	if out.Len() != 0 {
		t.Fatalf("lifecycle printed %q", out.String())
	}
}
