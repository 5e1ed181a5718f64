package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRunDemo(t *testing.T) {
	tests := []struct {
		mode       batchMode
		format     string
		effectRuns string
	}{
		{mode: modeNone, format: "summary", effectRuns: "effect runs: 10,"},
		{mode: modeAuto, format: "table", effectRuns: "effect runs: 4,"},
		{mode: modeDeps, format: "text", effectRuns: "effect runs: 4,"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var buf bytes.Buffer
			err := runDemo(&buf, demoConfig{
				updates:    3,
				mode:       tt.mode,
				format:     tt.format,
				maxHistory: 100,
				logger:     quietLogger(),
			})
			require.NoError(t, err)

			out := buf.String()
			assert.Contains(t, out, tt.effectRuns)
			assert.Contains(t, out, "firstName")
			assert.Contains(t, out, "age")
		})
	}
}

func TestRunDemoRejectsUnknownOptions(t *testing.T) {
	var buf bytes.Buffer
	err := runDemo(&buf, demoConfig{updates: 1, mode: "sometimes", format: "table", logger: quietLogger()})
	assert.EqualError(t, err, `unknown batch mode "sometimes"`)

	err = runDemo(&buf, demoConfig{updates: 1, mode: modeAuto, format: "xml", logger: quietLogger()})
	assert.EqualError(t, err, `unknown format "xml"`)
}
