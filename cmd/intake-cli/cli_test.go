package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every registered flag to its default so values set by
// one test never reach the next.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				require.NoError(t, sv.Replace(nil), "reset --%s", f.Name)
			} else {
				require.NoError(t, f.Value.Set(f.DefValue), "reset --%s", f.Name)
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		reset(cmd.Flags())
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidate_ReportsMessagesInOrder(t *testing.T) {
	out, err := execute(t, "validate", "--set", "maternal_age=70", "--set", "apgar_1min=11")
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"Please correct the following errors:",
		"  - gestation weeks is required",
		"  - bmi is required",
		"  - Maternal age should be between 10 and 60 years",
		"  - apgar_1min should be between 0 and 10",
	}
	require.GreaterOrEqual(t, len(lines), len(want))
	assert.Equal(t, want, lines[:len(want)])
}

func TestValidate_ValuesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maternal_age: 31\ngestation_weeks: 39\nbmi: 22.5\n"), 0o644))

	out, err := execute(t, "validate", "--values", path)
	require.NoError(t, err)
	assert.Contains(t, out, "All values are valid.")
}

func TestRender_HTMLWithRevealedGroup(t *testing.T) {
	out, err := execute(t, "render", "--set", "pregnancy_loss=yes", "--section", "history")
	require.NoError(t, err)

	assert.Contains(t, out, `id="historyTab" class="tab-button active"`)
	assert.NotContains(t, out, `data-group="pregnancyLossDetails" hidden`)
	assert.Contains(t, out, `data-group="multiplePregnancyDetails" hidden`)
}

func TestRender_TextRenderer(t *testing.T) {
	out, err := execute(t, "render", "--renderer", "tui", "--set", "maternal_age=31")
	require.NoError(t, err)
	assert.Contains(t, out, "[Maternal Details]")
	assert.Contains(t, out, "31")
}

func TestRender_UnknownSection(t *testing.T) {
	_, err := execute(t, "render", "--section", "nowhere")
	assert.Error(t, err)
}

func TestValidate_SetValueMayContainCommas(t *testing.T) {
	out, err := execute(t, "validate",
		"--set", "maternal_age=3,5",
		"--set", "gestation_weeks=38",
		"--set", "bmi=22",
	)
	require.Error(t, err)
	assert.Contains(t, out, "  - maternal age must be a number")
	assert.NotContains(t, out, "invalid argument")
}

func TestValidate_RejectsMalformedSet(t *testing.T) {
	_, err := execute(t, "validate", "--set", "maternal_age")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want name=value")
}

func TestParseAssignments_SplitsOnFirstEquals(t *testing.T) {
	got, err := parseAssignments([]string{"notes=a=b,c", " bmi =22"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"notes": "a=b,c", "bmi": "22"}, got)
}

func TestRender_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	page := `custom {{ form.Title }}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "form.html"), []byte(page), 0o644))

	out, err := execute(t, "render", "--templates", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "custom "), out)
	assert.NotContains(t, out, "<!DOCTYPE html>")
}

func TestRender_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	out, err := execute(t, "render", "--variant", "dark", "--link-css", "--section", "history")
	require.NoError(t, err)
	assert.Contains(t, out, `data-variant="dark"`)
	assert.Contains(t, out, `href="/assets/intake/intake.css"`)

	out, err = execute(t, "render")
	require.NoError(t, err)
	assert.NotContains(t, out, `data-variant=`)
	assert.NotContains(t, out, `href="/assets/intake/intake.css"`)
	assert.Contains(t, out, `id="maternalTab" class="tab-button active"`)
}
