package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

func TestCommands(t *testing.T) {
	stdout, _, err := runApp(t, "", "commands")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("first line = %q, want the header", lines[0])
	}
	if got, want := len(lines)-1, len(catchdb.Commands()); got != want {
		t.Errorf("listed %d commands, want %d", got, want)
	}
	if !strings.Contains(stdout, "ztopn name num") {
		t.Error("ztopn usage missing")
	}
}

func TestCommands_Category(t *testing.T) {
	stdout, _, err := runApp(t, "", "-o", "json", "commands", "--category", "queue")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var list []catchdb.CommandInfo
	if err := json.Unmarshal([]byte(stdout), &list); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(list) == 0 {
		t.Fatal("no queue commands listed")
	}
	for _, ci := range list {
		if ci.Category != catchdb.CategoryQueue {
			t.Errorf("%s has category %s", ci.Name, ci.Category)
		}
	}
}

func TestCommands_Errors(t *testing.T) {
	if _, _, err := runApp(t, "", "commands", "--category", "graph"); err == nil {
		t.Error("unknown category should fail")
	}
	if _, _, err := runApp(t, "", "-o", "xml", "commands"); err == nil {
		t.Error("unknown output format should fail")
	}
}
