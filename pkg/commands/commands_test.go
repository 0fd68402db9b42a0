package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"movies"},
		{"list"},
		{"list", "add"},
		{"list", "remove"},
		{"list", "clear"},
		{"remind"},
		{"watch"},
		{"mock-api"},
		{"key"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("expected command %v, got %v (%v)", path, cmd, err)
		}
	}

	movies, _, _ := root.Find([]string{"movies"})
	for _, flag := range []string{"upcoming", "search", "group", "trending", "genre", "json", "ephemeral"} {
		if movies.Flag(flag) == nil {
			t.Errorf("movies is missing --%s", flag)
		}
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	root := New()
	root.SetArgs([]string{"list", "--sort", "rating"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown sort") {
		t.Fatalf("expected unknown sort error, got %v", err)
	}
}

func TestHandleErrorAsJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	output.JSON = true
	defer func() { output.JSON = false }()

	if err := output.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("expected the error to be printed, got %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"boom"}` {
		t.Fatalf("unexpected output %q", got)
	}
}
