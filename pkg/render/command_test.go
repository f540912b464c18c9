package render

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rlaidlaw/pwdbview/pkg/selection"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// writeScript creates an executable shell script for exercising the
// command renderer
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "plotter.sh")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testItem() selection.Item {
	return selection.Item{
		Root:       "/data/Complete",
		Subject:    3,
		Key:        signal.Key{Prefix: "Radial", Type: signal.Velocity},
		HeaderName: "Radial_U",
	}
}

func TestCommandRenderer_Export(t *testing.T) {
	// Touch the file named by the final argument (--out value)
	script := writeScript(t, `for last; do :; done
touch "$last"`)

	renderer := NewCommandRenderer(script, 5*time.Second)
	out := filepath.Join(t.TempDir(), "fig.pdf")

	if err := renderer.Export(testItem(), out); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected artifact to exist: %v", err)
	}
}

func TestCommandRenderer_ExportFailure(t *testing.T) {
	script := writeScript(t, `echo "no such signal" >&2
exit 1`)

	renderer := NewCommandRenderer(script, 5*time.Second)
	err := renderer.Export(testItem(), filepath.Join(t.TempDir(), "fig.pdf"))
	if err == nil {
		t.Fatal("Expected export failure to be reported")
	}
}

func TestCommandRenderer_DisplayIsNoop(t *testing.T) {
	renderer := NewCommandRenderer("nonexistent-plotter", time.Second)
	if err := renderer.Display(testItem()); err != nil {
		t.Errorf("Display should not invoke the command: %v", err)
	}
}
