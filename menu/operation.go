package menu

import "fmt"

// OpCode identifies the outcome of handling a selection or typed text. Codes
// never cross invocation boundaries; they only route control within one pass.
type OpCode int

const (
	// OpRefreshMenu asks the enclosing menu to redraw itself.
	OpRefreshMenu OpCode = iota
	// OpBackToParentMenu pops one menu level.
	OpBackToParentMenu
	// OpExit terminates the script without emitting any rows.
	OpExit
	// OpOutput carries the final text to print.
	OpOutput
)

func (c OpCode) String() string {
	switch c {
	case OpRefreshMenu:
		return "refresh-menu"
	case OpBackToParentMenu:
		return "back-to-parent-menu"
	case OpExit:
		return "exit"
	case OpOutput:
		return "output"
	}
	return fmt.Sprintf("op(%d)", int(c))
}

// Operation is the result routed through the menu tree. Output is set only
// for OpOutput.
type Operation struct {
	Code   OpCode
	Output string
}

func Refresh() Operation { return Operation{Code: OpRefreshMenu} }
func Back() Operation    { return Operation{Code: OpBackToParentMenu} }
func Exit() Operation    { return Operation{Code: OpExit} }

func Output(text string) Operation {
	return Operation{Code: OpOutput, Output: text}
}
