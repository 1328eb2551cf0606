package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// OverlayType identifies the kind of modal overlay.
type OverlayType int

const (
	OverlayConfirm   OverlayType = iota // Cancel/OK confirmation
	OverlayTextInput                    // Single-line text input
	OverlayAlert                        // Message with a single OK button
)

// Overlay renders a centered modal box on top of existing content.
type Overlay struct {
	overlayType OverlayType
	title       string
	message     string
	cursor      int // Confirm: 0=Cancel, 1=OK
	input       textinput.Model
	active      bool
}

// NewConfirmOverlay creates a confirmation dialog. The cursor starts on
// Cancel so a stray Enter never confirms a destructive action.
func NewConfirmOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayConfirm,
		title:       title,
		message:     message,
		cursor:      0,
		active:      true,
	}
}

// NewTextInputOverlay creates a text input dialog.
func NewTextInputOverlay(title, placeholder string) Overlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 30
	return Overlay{
		overlayType: OverlayTextInput,
		title:       title,
		input:       ti,
		active:      true,
	}
}

// NewAlertOverlay creates a blocking message box.
func NewAlertOverlay(title, message string) Overlay {
	return Overlay{
		overlayType: OverlayAlert,
		title:       title,
		message:     message,
		active:      true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Type returns the overlay kind.
func (o Overlay) Type() OverlayType {
	return o.overlayType
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}

	switch o.overlayType {
	case OverlayConfirm:
		return o.updateConfirm(msg)
	case OverlayTextInput:
		return o.updateTextInput(msg)
	case OverlayAlert:
		return o.updateAlert(msg)
	}
	return o, nil
}

func closeCmd(result string, confirmed bool) tea.Cmd {
	return func() tea.Msg {
		return OverlayCloseMsg{Result: result, Confirmed: confirmed}
	}
}

func (o Overlay) updateConfirm(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			o.active = false
			return o, closeCmd("", false)
		case "y":
			o.active = false
			return o, closeCmd("", true)
		case "tab", "left", "right", "h", "l":
			o.cursor = 1 - o.cursor
		case "enter":
			o.active = false
			return o, closeCmd("", o.cursor == 1)
		}
	}
	return o, nil
}

func (o Overlay) updateTextInput(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.active = false
			return o, closeCmd("", false)
		case "enter":
			o.active = false
			return o, closeCmd(o.input.Value(), true)
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd
}

func (o Overlay) updateAlert(msg tea.Msg) (Overlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", " ", "space":
			o.active = false
			return o, closeCmd("", true)
		}
	}
	return o, nil
}

// View renders the overlay box. Compositing over a background is the
// caller's job, see Composite.
func (o Overlay) View() string {
	if !o.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	switch o.overlayType {
	case OverlayConfirm:
		b.WriteString(o.message)
		b.WriteString("\n\n")
		b.WriteString(o.renderButtons("Cancel", "OK"))
	case OverlayTextInput:
		b.WriteString(o.input.View())
		b.WriteString("\n\n")
		b.WriteString(OverlayHintStyle.Render("Enter: submit  Esc: cancel"))
	case OverlayAlert:
		b.WriteString(o.message)
		b.WriteString("\n\n")
		b.WriteString(OverlayButtonActiveStyle.Render("OK"))
		return AlertOverlayStyle.Render(b.String())
	}
	return OverlayStyle.Render(b.String())
}

// renderButtons draws two side-by-side buttons with the cursor on one.
func (o Overlay) renderButtons(cancel, ok string) string {
	if o.cursor == 0 {
		return OverlayButtonActiveStyle.Render(cancel) + "  " + OverlayButtonInactiveStyle.Render(ok)
	}
	return OverlayButtonInactiveStyle.Render(cancel) + "  " + OverlayButtonActiveStyle.Render(ok)
}

// Composite places the overlay box centered on top of the background.
func Composite(background, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)

		left := ansi.Truncate(bgLine, startCol, "")
		if pad := startCol - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + overlayLine + right
	}

	if totalHeight > 0 && len(bgLines) > totalHeight {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
