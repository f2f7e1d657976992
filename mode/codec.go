package mode

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// Row-scoped metadata keys injected into every info payload at render time.
const (
	KeySelectedID   = "id"
	KeySelectedText = "text"
)

const (
	lineSep  = "\x00"
	fieldSep = "\x1f"
)

// capabilities describes how one rofi release line differs from the others.
// The wire format itself is shared; releases only add directives, row fields
// and a dedicated custom-entry return value on top of it.
type capabilities struct {
	markup      bool // markup-rows directive
	rowMarkers  bool // active/urgent directives
	dataHeader  bool // data directive (ROFI_DATA round-trip)
	richRows    bool // meta/nonselectable row options
	customEntry bool // RETV 2 reported as a distinct action
}

type codec struct {
	version string
	caps    capabilities
}

func newCodec15() *codec {
	return &codec{version: "1.5", caps: capabilities{}}
}

func newCodec16() *codec {
	return &codec{version: "1.6", caps: capabilities{
		markup:     true,
		rowMarkers: true,
		dataHeader: true,
		richRows:   true,
	}}
}

func newCodec174() *codec {
	return &codec{version: "1.7.4", caps: capabilities{
		markup:      true,
		rowMarkers:  true,
		dataHeader:  true,
		richRows:    true,
		customEntry: true,
	}}
}

func (c *codec) Version() string { return c.version }

func (c *codec) Decode(env Env) (Action, map[string]any, error) {
	action, err := c.action(env[EnvReturnValue])
	if err != nil {
		return Action{}, nil, err
	}

	meta := make(map[string]any)
	if raw := env[EnvData]; raw != "" {
		blob, err := decodeBlob(EnvData, raw)
		if err != nil {
			return Action{}, nil, err
		}
		for k, v := range blob {
			meta[k] = v
		}
		// Row-scoped keys in the ambient blob describe a previous selection;
		// only the ROFI_INFO overlay may name the current one.
		delete(meta, KeySelectedID)
		delete(meta, KeySelectedText)
	}

	if raw := env[EnvInfo]; raw != "" && rowMetaApplies(action.Kind) {
		overlay, err := decodeBlob(EnvInfo, raw)
		if err != nil {
			return Action{}, nil, err
		}
		for k, v := range overlay {
			meta[k] = v
		}
	}

	return action, meta, nil
}

// rowMetaApplies reports whether ROFI_INFO is meaningful for the action.
// rofi sets it for selections and for custom keybindings pressed while a row
// is highlighted.
func rowMetaApplies(kind ActionKind) bool {
	return kind == ActionEntrySelected || kind == ActionCustomKey
}

func (c *codec) action(retv string) (Action, error) {
	switch retv {
	case "", "0":
		return Action{Kind: ActionInitialCall}, nil
	case "1":
		return Action{Kind: ActionEntrySelected}, nil
	case "2":
		if c.caps.customEntry {
			return Action{Kind: ActionCustomEntry}, nil
		}
		// Older releases reuse the selected-entry code for typed text; the
		// absence of row metadata is what identifies a custom entry there.
		return Action{Kind: ActionEntrySelected}, nil
	}
	n, err := strconv.Atoi(retv)
	if err != nil {
		return Action{}, &DecodeError{Source: EnvReturnValue, Err: err}
	}
	// Custom keybindings start at return value 10 and are numbered from 1.
	return Action{Kind: ActionCustomKey, Key: n - 9}, nil
}

func (c *codec) Prompt(text string) string {
	return header("prompt", text)
}

func (c *codec) Message(text string) string {
	return header("message", text)
}

func (c *codec) EnableMarkup() string {
	if !c.caps.markup {
		return ""
	}
	return header("markup-rows", "true")
}

func (c *codec) Urgent(row int) string {
	if !c.caps.rowMarkers {
		return ""
	}
	return header("urgent", strconv.Itoa(row))
}

func (c *codec) Active(row int) string {
	if !c.caps.rowMarkers {
		return ""
	}
	return header("active", strconv.Itoa(row))
}

func (c *codec) NoInput(disabled bool) string {
	return header("no-custom", strconv.FormatBool(disabled))
}

func (c *codec) Data(meta map[string]any) (string, error) {
	if !c.caps.dataHeader {
		return "", nil
	}
	blob, err := encodeBlob(meta)
	if err != nil {
		return "", err
	}
	return header("data", blob), nil
}

func (c *codec) Row(text string, opts RowOptions) (string, error) {
	var fields []string
	add := func(name, value string) {
		fields = append(fields, name, value)
	}

	if opts.Icon != "" {
		add("icon", opts.Icon)
	}
	if c.caps.richRows {
		if opts.SearchableText != "" {
			add("meta", opts.SearchableText)
		}
		add("nonselectable", strconv.FormatBool(opts.Nonselectable))
	}
	if opts.Info != nil {
		blob, err := encodeBlob(opts.Info)
		if err != nil {
			return "", err
		}
		add("info", blob)
	}

	line := strings.ReplaceAll(text, "\n", "   ")
	if len(fields) > 0 {
		line += lineSep + strings.Join(fields, fieldSep)
	}
	return line, nil
}

func header(name, value string) string {
	return lineSep + name + fieldSep + value
}

func encodeBlob(meta map[string]any) (string, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

func decodeBlob(source, raw string) (map[string]any, error) {
	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	var blob map[string]any
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	return blob, nil
}
