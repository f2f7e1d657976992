package mode

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func blob(t *testing.T, value map[string]any) string {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return base64.URLEncoding.EncodeToString(data)
}

func TestForVersionSelectsReleaseLine(t *testing.T) {
	cases := []struct {
		version string
		want    string
	}{
		{"1.5", "1.5"},
		{"1.5.4", "1.5"},
		{"1.6", "1.6"},
		{"1.7", "1.6"},
		{"1.7.3", "1.6"},
		{"1.7.4", "1.7.4"},
		{"1.7.5", "1.7.4"},
		{"2.0", "1.7.4"},
	}
	for _, tc := range cases {
		m, err := ForVersion(tc.version)
		if err != nil {
			t.Fatalf("ForVersion(%q): %v", tc.version, err)
		}
		if m.Version() != tc.want {
			t.Fatalf("ForVersion(%q) = %s, want %s", tc.version, m.Version(), tc.want)
		}
	}
}

func TestForVersionRejectsGarbage(t *testing.T) {
	for _, version := range []string{"", "new", "1.x", "one.six"} {
		if _, err := ForVersion(version); err == nil {
			t.Fatalf("expected error for version %q", version)
		}
	}
}

func TestDecodeActionMapping(t *testing.T) {
	m174, _ := ForVersion("1.7.4")
	m16, _ := ForVersion("1.6")

	cases := []struct {
		mode Mode
		retv string
		want Action
	}{
		{m174, "", Action{Kind: ActionInitialCall}},
		{m174, "0", Action{Kind: ActionInitialCall}},
		{m174, "1", Action{Kind: ActionEntrySelected}},
		{m174, "2", Action{Kind: ActionCustomEntry}},
		{m174, "10", Action{Kind: ActionCustomKey, Key: 1}},
		{m174, "19", Action{Kind: ActionCustomKey, Key: 10}},
		{m16, "2", Action{Kind: ActionEntrySelected}},
		{m16, "10", Action{Kind: ActionCustomKey, Key: 1}},
	}
	for _, tc := range cases {
		action, _, err := tc.mode.Decode(Env{EnvReturnValue: tc.retv})
		if err != nil {
			t.Fatalf("Decode retv=%q: %v", tc.retv, err)
		}
		if action != tc.want {
			t.Fatalf("Decode retv=%q = %+v, want %+v", tc.retv, action, tc.want)
		}
	}
}

func TestDecodeRejectsMalformedReturnValue(t *testing.T) {
	m, _ := ForVersion("1.6")
	_, _, err := m.Decode(Env{EnvReturnValue: "enter"})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if derr.Source != EnvReturnValue {
		t.Fatalf("unexpected source %q", derr.Source)
	}
}

func TestDecodeMergesDataAndRowOverlay(t *testing.T) {
	m, _ := ForVersion("1.6")
	env := Env{
		EnvReturnValue: "1",
		EnvData:        blob(t, map[string]any{"root.0": "on", "shared": "data"}),
		EnvInfo:        blob(t, map[string]any{"shared": "row", "id": []string{"root", "1"}}),
	}
	_, meta, err := m.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[string]any{
		"root.0": "on",
		"shared": "row",
		"id":     []any{"root", "1"},
	}
	if !reflect.DeepEqual(meta, want) {
		t.Fatalf("meta = %#v, want %#v", meta, want)
	}
}

func TestDecodeDropsStaleRowKeysFromData(t *testing.T) {
	m, _ := ForVersion("1.7.4")
	env := Env{
		EnvReturnValue: "2",
		EnvData:        blob(t, map[string]any{"id": []string{"root", "3"}, "text": "old", "root.3": 1}),
	}
	_, meta, err := m.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := meta[KeySelectedID]; ok {
		t.Fatalf("stale id survived decode: %#v", meta)
	}
	if _, ok := meta[KeySelectedText]; ok {
		t.Fatalf("stale text survived decode: %#v", meta)
	}
	if meta["root.3"] != float64(1) {
		t.Fatalf("item state lost: %#v", meta)
	}
}

func TestDecodeSkipsRowOverlayForCustomEntry(t *testing.T) {
	m, _ := ForVersion("1.7.4")
	env := Env{
		EnvReturnValue: "2",
		EnvInfo:        blob(t, map[string]any{"id": []string{"root", "0"}}),
	}
	_, meta, err := m.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty meta, got %#v", meta)
	}
}

func TestDecodeErrorsOnMalformedBase64(t *testing.T) {
	m, _ := ForVersion("1.6")
	for _, env := range []Env{
		{EnvReturnValue: "1", EnvData: "%%not-base64%%"},
		{EnvReturnValue: "1", EnvInfo: "%%not-base64%%"},
	} {
		_, _, err := m.Decode(env)
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
	}
}

func TestDecodeErrorsOnMalformedJSON(t *testing.T) {
	m, _ := ForVersion("1.6")
	raw := base64.URLEncoding.EncodeToString([]byte("{not json"))
	_, _, err := m.Decode(Env{EnvReturnValue: "1", EnvData: raw})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if derr.Source != EnvData {
		t.Fatalf("unexpected source %q", derr.Source)
	}
}

func TestRowInfoRoundTrip(t *testing.T) {
	m, _ := ForVersion("1.6")
	info := map[string]any{
		"root.1": "enabled",
		"text":   "Toggle",
		"id":     []string{"root", "1"},
	}
	row, err := m.Row("Toggle", RowOptions{Info: info})
	if err != nil {
		t.Fatalf("Row: %v", err)
	}

	parts := strings.SplitN(row, "\x00", 2)
	if len(parts) != 2 {
		t.Fatalf("row has no option fields: %q", row)
	}
	fields := strings.Split(parts[1], "\x1f")
	var encoded string
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] == "info" {
			encoded = fields[i+1]
		}
	}
	if encoded == "" {
		t.Fatalf("row has no info field: %q", row)
	}

	_, meta, err := m.Decode(Env{EnvReturnValue: "1", EnvInfo: encoded})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[string]any{
		"root.1": "enabled",
		"text":   "Toggle",
		"id":     []any{"root", "1"},
	}
	if !reflect.DeepEqual(meta, want) {
		t.Fatalf("round trip = %#v, want %#v", meta, want)
	}
}

func TestRowFieldsPerVersion(t *testing.T) {
	opts := RowOptions{Icon: "folder", SearchableText: "projects", Nonselectable: true}

	m16, _ := ForVersion("1.6")
	row, err := m16.Row("Projects", opts)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	want := "Projects\x00icon\x1ffolder\x1fmeta\x1fprojects\x1fnonselectable\x1ftrue"
	if row != want {
		t.Fatalf("row = %q, want %q", row, want)
	}

	m15, _ := ForVersion("1.5")
	row, err = m15.Row("Projects", opts)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if row != "Projects\x00icon\x1ffolder" {
		t.Fatalf("1.5 row = %q", row)
	}
}

func TestRowFlattensNewlines(t *testing.T) {
	m, _ := ForVersion("1.6")
	row, err := m.Row("a\nb", RowOptions{})
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if row != "a   b\x00nonselectable\x1ffalse" {
		t.Fatalf("row = %q", row)
	}
}

func TestDirectivesPerVersion(t *testing.T) {
	m16, _ := ForVersion("1.6")
	if got := m16.Prompt("menu"); got != "\x00prompt\x1fmenu" {
		t.Fatalf("prompt = %q", got)
	}
	if got := m16.EnableMarkup(); got != "\x00markup-rows\x1ftrue" {
		t.Fatalf("markup = %q", got)
	}
	if got := m16.Urgent(3); got != "\x00urgent\x1f3" {
		t.Fatalf("urgent = %q", got)
	}
	if got := m16.Active(0); got != "\x00active\x1f0" {
		t.Fatalf("active = %q", got)
	}
	if got := m16.NoInput(false); got != "\x00no-custom\x1ffalse" {
		t.Fatalf("no-custom = %q", got)
	}
	if got := m16.Message("hi"); got != "\x00message\x1fhi" {
		t.Fatalf("message = %q", got)
	}

	m15, _ := ForVersion("1.5")
	if got := m15.EnableMarkup(); got != "" {
		t.Fatalf("1.5 markup = %q", got)
	}
	if got := m15.Urgent(1); got != "" {
		t.Fatalf("1.5 urgent = %q", got)
	}
	data, err := m15.Data(map[string]any{"k": "v"})
	if err != nil || data != "" {
		t.Fatalf("1.5 data = %q, %v", data, err)
	}
}

func TestDataDirectiveRoundTrip(t *testing.T) {
	m, _ := ForVersion("1.6")
	directive, err := m.Data(map[string]any{"root.0": "x"})
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !strings.HasPrefix(directive, "\x00data\x1f") {
		t.Fatalf("directive = %q", directive)
	}
	encoded := strings.TrimPrefix(directive, "\x00data\x1f")
	_, meta, err := m.Decode(Env{EnvReturnValue: "1", EnvData: encoded})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if meta["root.0"] != "x" {
		t.Fatalf("meta = %#v", meta)
	}
}
