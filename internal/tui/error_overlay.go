// SPDX-License-Identifier: Apache-2.0

package tui

// errorOverlayModel renders a boxed error on top of the form, for failures
// that are not tied to a single field.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	body := errorStyle.Render("Error") + "\n\n" + m.message
	return overlayBoxStyle.Render(body + "\n\n" + helpStyle.Render("enter / esc close"))
}
