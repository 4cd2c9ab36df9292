package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/structs"
	"github.com/spf13/pflag"
)

func TestVersionJSON(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	var info map[string]any
	if err := json.Unmarshal(out.Bytes(), &info); err != nil || info["goVersion"] == "" {
		t.Fatalf("output = %q, err = %v", out.String(), err)
	}
}

func TestRootHasCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"serve", "login", "register", "logout", "whoami", "profile", "news", "draft", "upload", "version"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestArticleFlagsApplyOnlyChanged(t *testing.T) {
	var f articleFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"--title", "Budget", "--tags", "a, b,a", "--status", "published"}); err != nil {
		t.Fatal(err)
	}

	d := structs.Draft{Content: "kept", Status: structs.StatusDraft}
	if err := f.apply(fs, &d); err != nil {
		t.Fatal(err)
	}
	if d.Title != "Budget" || d.Content != "kept" || d.Status != structs.StatusPublished {
		t.Fatalf("draft = %+v", d)
	}
	if strings.Join(d.Tags, ",") != "a,b" {
		t.Fatalf("tags = %v", d.Tags)
	}

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	_ = fs.Parse([]string{"--status", "bogus"})
	if err := f.apply(fs, &d); err == nil {
		t.Fatal("unknown status should fail")
	}
}

func TestUserErrorListsFields(t *testing.T) {
	err := userError(ecode.Validation("Title is required", map[string]string{
		"title":   "Title is required",
		"content": "Content is required",
	}))
	if err.Error() != "Title is required\n  content: Content is required" {
		t.Fatalf("got %q", err.Error())
	}
	if userError(ecode.Network(nil)).Error() != ecode.Text(ecode.NetworkErr) {
		t.Fatalf("network message = %q", userError(ecode.Network(nil)).Error())
	}
}

func TestSplitAddr(t *testing.T) {
	host, port, err := splitAddr("0.0.0.0:8080")
	if err != nil || host != "0.0.0.0" || port != 8080 {
		t.Fatalf("got %s %d %v", host, port, err)
	}
	if _, _, err := splitAddr("nope"); err == nil {
		t.Fatal("expected an error")
	}
}
