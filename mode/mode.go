// Package mode implements the rofi script-mode text protocol: decoding the
// launcher's environment into an action plus surviving metadata, and encoding
// header directives and menu rows into NUL/US-delimited output.
package mode

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables set by rofi before each script invocation.
const (
	EnvReturnValue = "ROFI_RETV"
	EnvData        = "ROFI_DATA"
	EnvInfo        = "ROFI_INFO"
)

// ActionKind classifies why the script was invoked.
type ActionKind int

const (
	ActionInitialCall ActionKind = iota
	ActionEntrySelected
	ActionCustomEntry
	ActionCustomKey
)

func (k ActionKind) String() string {
	switch k {
	case ActionInitialCall:
		return "initial-call"
	case ActionEntrySelected:
		return "entry-selected"
	case ActionCustomEntry:
		return "custom-entry"
	case ActionCustomKey:
		return "custom-key"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is the decoded return-value code. Key holds the custom keybinding
// index and is meaningful only when Kind is ActionCustomKey.
type Action struct {
	Kind ActionKind
	Key  int
}

// Env is a snapshot of the process environment relevant to decoding.
type Env map[string]string

// FromEnviron builds an Env from os.Environ()-style "KEY=VALUE" entries.
func FromEnviron(environ []string) Env {
	env := make(Env, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env[parts[0]] = parts[1]
	}
	return env
}

// RowOptions carries the optional per-row fields of a rendered menu entry.
type RowOptions struct {
	Icon           string
	SearchableText string
	Nonselectable  bool
	// Info is serialised into the row's info field; rofi echoes it back via
	// ROFI_INFO when the row is chosen. This is the only state that survives
	// to the next invocation of the script.
	Info map[string]any
}

// Mode is a stateless, version-parameterised codec for one rofi release line.
// Directive encoders return an empty string when the release does not support
// the directive; callers skip empty lines.
type Mode interface {
	Version() string

	// Decode derives the action and the merged metadata (stored blob plus
	// selected-row overlay) from the environment.
	Decode(env Env) (Action, map[string]any, error)

	Prompt(text string) string
	Message(text string) string
	EnableMarkup() string
	Urgent(row int) string
	Active(row int) string
	NoInput(disabled bool) string
	// Data encodes the ambient metadata into a header directive so it comes
	// back through ROFI_DATA even when no row is selected.
	Data(meta map[string]any) (string, error)

	Row(text string, opts RowOptions) (string, error)
}

// DecodeError reports malformed base64 or JSON in one of the metadata
// environment variables. It is fatal for the invocation.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ForVersion selects the codec matching a rofi version string such as
// "1.7.5". Selection is the caller's responsibility; the returned codec is
// stateless and safe to share.
func ForVersion(version string) (Mode, error) {
	parts := strings.Split(version, ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("unsupported rofi version %q", version)
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("unsupported rofi version %q", version)
	}
	switch {
	case versionAtLeast(nums, 1, 7, 4):
		return newCodec174(), nil
	case versionAtLeast(nums, 1, 6):
		return newCodec16(), nil
	default:
		return newCodec15(), nil
	}
}

func versionAtLeast(version []int, want ...int) bool {
	for i, w := range want {
		v := 0
		if i < len(version) {
			v = version[i]
		}
		if v != w {
			return v > w
		}
	}
	return true
}
