package key

// Code is a logical grid key code. Raw key events are resolved to a code
// before dispatch; events whose code is CodeNone are left unconsumed so the
// host can handle them.
type Code uint8

const (
	// CodeNone means the key has no grid meaning.
	CodeNone Code = iota

	// CodeInteract runs the cell interaction used for pointer clicks (Enter).
	CodeInteract

	// CodeHeatmap toggles the heatmap highlighter on the focused column.
	CodeHeatmap
	// CodeUniqueEntries toggles the unique-entries highlighter.
	CodeUniqueEntries
	// CodeDataBars toggles the data-bars highlighter.
	CodeDataBars

	// CodeFreeze flips the pinned state of the focused column.
	CodeFreeze

	// CodePrecision sets display precision; the digit is resolved alongside
	// the code.
	CodePrecision

	// CodeMoveUp moves focus to the cell above.
	CodeMoveUp
	// CodeMoveDown moves focus to the cell below.
	CodeMoveDown
	// CodeMoveLeft moves focus to the cell to the left.
	CodeMoveLeft
	// CodeMoveRight moves focus to the cell to the right.
	CodeMoveRight
	// CodePageUp moves focus or scrolls up by one page.
	CodePageUp
	// CodePageDown moves focus or scrolls down by one page.
	CodePageDown
)

// String returns a human-readable code name.
func (c Code) String() string {
	switch c {
	case CodeInteract:
		return "interact"
	case CodeHeatmap:
		return "heatmap"
	case CodeUniqueEntries:
		return "unique-entries"
	case CodeDataBars:
		return "data-bars"
	case CodeFreeze:
		return "freeze"
	case CodePrecision:
		return "precision"
	case CodeMoveUp:
		return "move-up"
	case CodeMoveDown:
		return "move-down"
	case CodeMoveLeft:
		return "move-left"
	case CodeMoveRight:
		return "move-right"
	case CodePageUp:
		return "page-up"
	case CodePageDown:
		return "page-down"
	default:
		return "none"
	}
}

// IsHighlighter returns true for the highlighter toggle codes.
func (c Code) IsHighlighter() bool {
	return c == CodeHeatmap || c == CodeUniqueEntries || c == CodeDataBars
}

// IsNavigation returns true for the focus movement and paging codes.
func (c Code) IsNavigation() bool {
	switch c {
	case CodeMoveUp, CodeMoveDown, CodeMoveLeft, CodeMoveRight, CodePageUp, CodePageDown:
		return true
	default:
		return false
	}
}

// Resolve maps a raw key event to a logical grid code. For CodePrecision the
// returned digit is the requested fractional digit count; it is zero for
// every other code.
func Resolve(ev Event) (Code, int) {
	switch ev.Key {
	case KeyEnter:
		return CodeInteract, 0
	case KeyUp:
		return CodeMoveUp, 0
	case KeyDown:
		return CodeMoveDown, 0
	case KeyLeft:
		return CodeMoveLeft, 0
	case KeyRight:
		return CodeMoveRight, 0
	case KeyPageUp:
		return CodePageUp, 0
	case KeyPageDown:
		return CodePageDown, 0
	case KeyRune:
		return resolveRune(ev.Rune)
	default:
		return CodeNone, 0
	}
}

// resolveRune maps character keys to grid codes.
func resolveRune(r rune) (Code, int) {
	switch {
	case r >= '0' && r <= '9':
		return CodePrecision, int(r - '0')
	case r == 'h' || r == 'H':
		return CodeHeatmap, 0
	case r == 'u' || r == 'U':
		return CodeUniqueEntries, 0
	case r == 'b' || r == 'B':
		return CodeDataBars, 0
	case r == 'f' || r == 'F':
		return CodeFreeze, 0
	default:
		return CodeNone, 0
	}
}
