package core

// Action represents a semantic player intent, abstracted from physical key
// presses. The platform maps keys to actions; the game never sees keys.
type Action int

const (
	ActionNone        Action = iota
	ActionSubmit             // Enter - insert (index/value fields) or search (pattern field)
	ActionDelete             // Ctrl+D - delete at the typed index
	ActionQuickDelete        // X/Delete on the board - delete under the cursor
	ActionClear              // Ctrl+L - empty the array
	ActionRestart            // Ctrl+R - new secret, same level
	ActionNextLevel          // Ctrl+N - advance after a win
	ActionHint               // Ctrl+T - show/hide the secret
	ActionNextField          // Tab - focus next input
	ActionPrevField          // Shift+Tab - focus previous input
	ActionCursorLeft         // Left on the board
	ActionCursorRight        // Right on the board
	ActionBack               // Esc - back to menu
	ActionQuit               // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSubmit:
		return "Submit"
	case ActionDelete:
		return "Delete"
	case ActionQuickDelete:
		return "QuickDelete"
	case ActionClear:
		return "Clear"
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionHint:
		return "Hint"
	case ActionNextField:
		return "NextField"
	case ActionPrevField:
		return "PrevField"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
