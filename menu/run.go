package menu

import (
	"context"
	"io"
	"os"

	"github.com/atomicstack/rofi-menu-control/internal/logging"
	"github.com/atomicstack/rofi-menu-control/internal/logging/events"
	"github.com/atomicstack/rofi-menu-control/mode"
	"github.com/atomicstack/rofi-menu-control/session"
)

// Options configures one script invocation.
type Options struct {
	// RofiVersion selects the protocol codec. Defaults to "1.6".
	RofiVersion string
	// Session optionally persists state across rofi restarts.
	Session session.Store
	// LifetimeSession keeps session contents when a new rofi run starts;
	// by default a fresh initial call clears them.
	LifetimeSession bool
	// Env and Args override the process environment and argument vector,
	// mainly for tests. Nil selects the real ones.
	Env  mode.Env
	Args []string
}

// Execute performs one full build/route/render pass and returns the
// resulting operation. It never writes to stdout itself.
func Execute(ctx context.Context, root *Menu, opts Options) (Operation, error) {
	version := opts.RofiVersion
	if version == "" {
		version = "1.6"
	}
	codec, err := mode.ForVersion(version)
	if err != nil {
		return Operation{}, err
	}

	env := opts.Env
	if env == nil {
		env = mode.FromEnviron(os.Environ())
	}
	args := opts.Args
	if args == nil {
		args = os.Args
	}
	rawInput := ""
	if len(args) > 1 {
		rawInput = args[1]
	}

	meta, err := NewMetaStore(codec, env, rawInput)
	if err != nil {
		return Operation{}, err
	}

	if opts.Session != nil {
		if err := opts.Session.Load(); err != nil {
			return Operation{}, err
		}
		// A parameterless initial call means rofi was restarted; stale
		// session state would leak routing decisions across runs.
		if meta.Action().Kind == mode.ActionInitialCall && rawInput == "" && !opts.LifetimeSession {
			opts.Session.Clear()
		}
		meta.AttachSession(opts.Session)
	}

	bound, err := root.Build(ctx, RootID, meta)
	if err != nil {
		return Operation{}, err
	}

	var op Operation
	switch {
	case meta.SelectedID() != nil:
		op, err = bound.PropagateSelect(ctx, meta)
	case meta.UserInput() != "":
		op, err = bound.PropagateUserInput(ctx, meta)
	default:
		op, err = bound.outputSelf(ctx, meta)
	}
	if err != nil {
		return Operation{}, err
	}
	events.Menu.Operation(op.Code.String())

	if opts.Session != nil {
		if err := opts.Session.Save(); err != nil {
			return Operation{}, err
		}
	}
	return op, nil
}

// Run executes one invocation against the real process environment and
// performs the process-level effects: an output operation is printed to
// stdout, everything else terminates silently. Rofi closes the menu when a
// non-initial call produces no output.
func Run(root *Menu, opts Options) {
	op, err := Execute(context.Background(), root, opts)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
	switch op.Code {
	case OpOutput:
		io.WriteString(os.Stdout, op.Output)
	case OpExit:
		os.Exit(1)
	}
}
