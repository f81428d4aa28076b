package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpabuildError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SpabuildError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestSpabuildError_WithContext(t *testing.T) {
	err := New(CategoryInput, SeverityFatal, "bad entry").
		WithContext("entry", "src/main.js").
		WithContext("root", "/proj")

	require.NotNil(t, err.Context)
	assert.Equal(t, "src/main.js", err.Context["entry"])
	assert.Equal(t, "/proj", err.Context["root"])
}

func TestCategoryThroughWrapping(t *testing.T) {
	inner := OutputIsRoot("/proj")
	wrapped := fmt.Errorf("gate: %w", inner)

	assert.True(t, IsCategory(wrapped, CategoryConfig))
	assert.False(t, IsCategory(wrapped, CategoryInput))
	assert.Equal(t, CategoryConfig, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(stdErrors.New("plain")))
	assert.ErrorIs(t, wrapped, ErrOutputIsRoot)
}

func TestExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	assert.Equal(t, ExitOK, a.ExitCodeFor(nil))
	assert.Equal(t, ExitInput, a.ExitCodeFor(EntryNotFound("/proj", []string{"main.js"})))
	assert.Equal(t, ExitInput, a.ExitCodeFor(EntryMissing("src/x.js")))
	assert.Equal(t, ExitConfig, a.ExitCodeFor(OutputIsRoot("/proj")))
	assert.Equal(t, ExitBuild, a.ExitCodeFor(BuildFailed("build", stdErrors.New("exit 2"))))
	assert.Equal(t, ExitInternal, a.ExitCodeFor(InternalError("boom", nil)))
	assert.Equal(t, 1, a.ExitCodeFor(stdErrors.New("plain")))
}

func TestFormatError_EntryMessages(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	msg := a.FormatError(EntryNotFound("/proj", []string{"src/main.js", "src/App.vue", "main.js", "App.vue"}))
	assert.Contains(t, msg, "Failed to locate entry file in")
	assert.Contains(t, msg, "/proj")
	assert.Contains(t, msg, "Valid entry file should be one of: main.js or App.vue.")

	msg = a.FormatError(EntryMissing("src/nope.js"))
	assert.Contains(t, msg, "src/nope.js")
	assert.Contains(t, msg, "does not exist.")

	msg = a.FormatError(OutputIsRoot("/proj"))
	assert.Contains(t, msg, "Do not set output directory to project root.")
}

func TestReport_WritesMessageAndReturnsCode(t *testing.T) {
	var buf bytes.Buffer
	a := NewCLIErrorAdapter(false, nil).WithOutput(&buf)

	code := a.Report(EntryMissing("src/nope.js"))
	assert.Equal(t, ExitInput, code)
	assert.Contains(t, buf.String(), "src/nope.js")

	buf.Reset()
	assert.Equal(t, ExitOK, a.Report(nil))
	assert.Empty(t, buf.String())
}
