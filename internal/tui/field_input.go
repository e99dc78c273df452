// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/SAMAymen/formix/models"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTextareaRows = 3

// fieldInput is the terminal rendition of one schema field. Text-like fields
// hold a textinput, textarea fields a textarea, and option-bearing fields a
// cursor over their option list.
type fieldInput struct {
	field models.Field

	text textinput.Model
	area textarea.Model

	// cursor is the highlighted option for select, radio and checkbox fields.
	cursor int
	// chosen is the selected option index for select and radio; -1 means none.
	chosen int
	// checked marks the toggled options of a checkbox field.
	checked map[int]bool

	validationErr string
}

func newFieldInput(field models.Field) fieldInput {
	in := fieldInput{field: field, chosen: -1}

	switch field.Type {
	case models.FieldTextarea:
		area := textarea.New()
		area.Placeholder = field.Placeholder
		area.SetWidth(50)
		rows := field.Rows
		if rows <= 0 {
			rows = defaultTextareaRows
		}
		area.SetHeight(rows)
		in.area = area
	case models.FieldSelect, models.FieldRadio, models.FieldCheckbox:
		in.checked = make(map[int]bool)
	default:
		text := textinput.New()
		text.Placeholder = field.Placeholder
		text.Width = 50
		in.text = text
	}

	return in
}

func (in fieldInput) optionBased() bool {
	switch in.field.Type {
	case models.FieldSelect, models.FieldRadio, models.FieldCheckbox:
		return true
	}
	return false
}

func (in fieldInput) isTextarea() bool {
	return in.field.Type == models.FieldTextarea
}

// values returns what this field currently contributes to the submission
// multimap. Empty text inputs contribute nothing.
func (in fieldInput) values() []string {
	switch in.field.Type {
	case models.FieldTextarea:
		v := strings.TrimSpace(in.area.Value())
		if v == "" {
			return nil
		}
		return []string{v}
	case models.FieldSelect, models.FieldRadio:
		options := in.field.OptionList()
		if in.chosen < 0 || in.chosen >= len(options) {
			return nil
		}
		return []string{options[in.chosen]}
	case models.FieldCheckbox:
		options := in.field.OptionList()
		var out []string
		for i, option := range options {
			if in.checked[i] {
				out = append(out, option)
			}
		}
		return out
	default:
		v := strings.TrimSpace(in.text.Value())
		if v == "" {
			return nil
		}
		return []string{v}
	}
}

// setValues seeds the input from a saved draft.
func (in *fieldInput) setValues(values []string) {
	if len(values) == 0 {
		return
	}

	switch in.field.Type {
	case models.FieldTextarea:
		in.area.SetValue(values[0])
	case models.FieldSelect, models.FieldRadio:
		for i, option := range in.field.OptionList() {
			if option == values[0] {
				in.chosen = i
				in.cursor = i
				return
			}
		}
	case models.FieldCheckbox:
		for _, value := range values {
			for i, option := range in.field.OptionList() {
				if option == value {
					in.checked[i] = true
				}
			}
		}
	default:
		in.text.SetValue(values[0])
	}
}

func (in *fieldInput) focusInput() tea.Cmd {
	switch in.field.Type {
	case models.FieldTextarea:
		return in.area.Focus()
	case models.FieldSelect, models.FieldRadio, models.FieldCheckbox:
		return nil
	default:
		return in.text.Focus()
	}
}

func (in *fieldInput) blurInput() {
	switch in.field.Type {
	case models.FieldTextarea:
		in.area.Blur()
	case models.FieldSelect, models.FieldRadio, models.FieldCheckbox:
	default:
		in.text.Blur()
	}
}

// handleOptionKey processes navigation and toggling for option-based fields.
// It reports whether the key changed the collected values.
func (in *fieldInput) handleOptionKey(msg tea.KeyMsg) bool {
	options := in.field.OptionList()
	if len(options) == 0 {
		return false
	}

	switch msg.String() {
	case "left":
		if in.cursor > 0 {
			in.cursor--
		}
	case "right":
		if in.cursor < len(options)-1 {
			in.cursor++
		}
	case " ", "enter":
		if in.field.Type == models.FieldCheckbox {
			in.checked[in.cursor] = !in.checked[in.cursor]
		} else {
			in.chosen = in.cursor
		}
		return true
	}

	return false
}

func (in fieldInput) viewLabel(focused bool) string {
	label := in.field.Label
	if label == "" {
		label = in.field.FieldID
	}
	label += requiredMark(in.field.Required)

	if focused {
		return focusedStyle.Render("> " + label)
	}
	return "  " + label
}

func (in fieldInput) viewInput(focused bool) string {
	switch in.field.Type {
	case models.FieldTextarea:
		return in.area.View()
	case models.FieldSelect, models.FieldRadio:
		return in.viewSingleChoice(focused)
	case models.FieldCheckbox:
		return in.viewMultiChoice(focused)
	default:
		return in.text.View()
	}
}

func (in fieldInput) viewSingleChoice(focused bool) string {
	options := in.field.OptionList()
	parts := make([]string, 0, len(options))
	for i, option := range options {
		marker := "( )"
		if i == in.chosen {
			marker = "(•)"
		}
		cell := marker + " " + option
		if focused && i == in.cursor {
			cell = focusedStyle.Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "   ")
}

func (in fieldInput) viewMultiChoice(focused bool) string {
	options := in.field.OptionList()
	parts := make([]string, 0, len(options))
	for i, option := range options {
		marker := "[ ]"
		if in.checked[i] {
			marker = "[x]"
		}
		cell := marker + " " + option
		if focused && i == in.cursor {
			cell = focusedStyle.Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "   ")
}

func (in fieldInput) viewHelp() string {
	if in.field.HelpText == "" {
		return ""
	}
	return helpStyle.Render(in.field.HelpText)
}
