package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}},
		{name: "with nil writer", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterrupt_CancelsContext(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)
	ctx := handler.HandleInterrupts(context.Background())

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.interrupt()
	<-ctx.Done()

	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, output.String(), "Preparation interrupted!")
	assert.Contains(t, output.String(), "No output files were written.")
}

func TestInterrupt_ParentCancelIsNotAnInterrupt(t *testing.T) {
	handler := NewInterruptHandler(&bytes.Buffer{})
	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)

	cancel()
	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

func TestInterrupt_ListsWrittenFilesOnce(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)
	_ = handler.HandleInterrupts(context.Background())

	handler.Written("out/migration.csv")
	handler.Written("out/birth.csv")
	handler.interrupt()
	handler.interrupt()

	out := output.String()
	assert.Equal(t, 1, strings.Count(out, "Preparation interrupted!"))
	assert.Contains(t, out, "2 output file(s) were completed")
	assert.Contains(t, out, "out/birth.csv")
}
