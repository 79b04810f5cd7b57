package iocontext

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestDefaultIO(t *testing.T) {
	io := DefaultIO()
	if io.Out == nil || io.ErrOut == nil || io.In == nil {
		t.Error("DefaultIO should return non-nil streams")
	}
}

func TestWithIO(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	ctx := WithIO(context.Background(), &IO{Out: out, ErrOut: errOut})

	got := GetIO(ctx)
	if got.Out != out || got.ErrOut != errOut {
		t.Error("GetIO should return the IO set with WithIO")
	}
}

func TestGetIO_DefaultsWhenNotSet(t *testing.T) {
	if GetIO(context.Background()) == nil {
		t.Error("GetIO should return default IO when not set")
	}
	if GetIO(WithIO(context.Background(), nil)) == nil {
		t.Error("GetIO should ignore a nil IO")
	}
}

func TestIsInteractive_NonTerminal(t *testing.T) {
	io := &IO{In: strings.NewReader("bonjour\n"), ErrOut: &bytes.Buffer{}}
	if io.IsInteractive() {
		t.Error("a reader is never interactive")
	}
	if io.ColorEnabled() {
		t.Error("a buffer never gets color")
	}

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if (&IO{In: f}).IsInteractive() {
		t.Error("a regular file is not a terminal")
	}
}
