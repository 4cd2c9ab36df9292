package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoJSON(t *testing.T) {
	Version, Branch, Revision, BuiltAt = "1.2.3", "main", "abc1234", "today"
	defer func() { Version, Branch, Revision, BuiltAt = "0.0.0", "unknown", "unknown", "unknown" }()

	info := GetVersionInfo()
	if info.Version != "1.2.3" || info.Revision != "abc1234" || info.GoVersion == "" {
		t.Fatalf("info = %+v", info)
	}
	raw, err := info.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var back Info
	if err := json.Unmarshal([]byte(raw), &back); err != nil || back.Branch != "main" {
		t.Fatalf("JSON = %s, err = %v", raw, err)
	}
	if !strings.Contains(info.String(), "Version: 1.2.3") {
		t.Fatalf("String = %q", info.String())
	}
}
