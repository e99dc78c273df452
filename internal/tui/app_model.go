// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAMAymen/formix/internal/app"
	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// draftDebounce is how long the widget waits after the last keystroke before
// persisting the draft.
const draftDebounce = 500 * time.Millisecond

type screen int

const (
	screenForm screen = iota
	screenSubmitting
	screenSuccess
)

type widgetModel struct {
	ctx      context.Context
	services *service.ClientServices
	cfg      config.ClientWidget

	schema    models.SchemaResponse
	fromCache bool

	inputs      []fieldInput
	focus       int
	submitLabel string

	currentScreen screen
	spin          spinner.Model

	showError    bool
	errorOverlay errorOverlayModel

	successMsg string
	successAt  string
	status     string

	draftSeq   int
	quitByUser bool
}

func newWidgetModel(ctx context.Context, services *service.ClientServices, cfg config.ClientWidget, schema models.SchemaResponse, fromCache bool, draft map[string][]string) widgetModel {
	var inputs []fieldInput
	submitLabel := schema.SubmitText

	for _, field := range schema.Fields {
		if field.Type == models.FieldCTA {
			if field.ButtonText != "" {
				submitLabel = field.ButtonText
			}
			continue
		}

		in := newFieldInput(field)
		if draft != nil {
			if saved, ok := draft[field.FieldID]; ok {
				in.setValues(saved)
			}
		}
		inputs = append(inputs, in)
	}

	if submitLabel == "" {
		submitLabel = "Submit"
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := widgetModel{
		ctx:         ctx,
		services:    services,
		cfg:         cfg,
		schema:      schema,
		fromCache:   fromCache,
		inputs:      inputs,
		submitLabel: submitLabel,
		spin:        s,
	}
	if len(m.inputs) > 0 {
		m.inputs[0].focusInput()
	}
	return m
}

// submitIdx is the virtual focus position of the submit button, one past the
// last field.
func (m widgetModel) submitIdx() int {
	return len(m.inputs)
}

func (m widgetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.quitByUser = true
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
	case submitDoneMsg:
		return m.handleSubmitDone(msg)
	case draftTickMsg:
		if msg.seq == m.draftSeq && m.currentScreen == screenForm {
			return m, m.cmdSaveDraft(m.collect())
		}
		return m, nil
	case draftSavedMsg:
		if msg.err != nil {
			m.status = "draft not saved"
			return m, cmdClearStatus()
		}
		return m, nil
	case draftClearedMsg:
		return m, nil
	case copiedMsg:
		m.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenForm:
		return m.updateForm(msg)
	case screenSubmitting:
		return m.updateSubmitting(msg)
	case screenSuccess:
		return m.updateSuccess(msg)
	}

	return m, nil
}

func (m widgetModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		onSubmitButton := m.focus == m.submitIdx()

		switch {
		case key.Matches(keyMsg, keys.submit):
			return m.trySubmit()
		case key.Matches(keyMsg, keys.tab):
			return m.moveFocus(1), nil
		case key.Matches(keyMsg, keys.backtab):
			return m.moveFocus(-1), nil
		case key.Matches(keyMsg, keys.enter):
			if onSubmitButton {
				return m.trySubmit()
			}
			current := &m.inputs[m.focus]
			if current.optionBased() {
				if current.handleOptionKey(keyMsg) {
					return m, m.scheduleDraftSave()
				}
				return m, nil
			}
			if !current.isTextarea() {
				return m.moveFocus(1), nil
			}
		case key.Matches(keyMsg, keys.up), key.Matches(keyMsg, keys.down):
			if onSubmitButton || !m.inputs[m.focus].isTextarea() {
				if key.Matches(keyMsg, keys.up) {
					return m.moveFocus(-1), nil
				}
				return m.moveFocus(1), nil
			}
		case key.Matches(keyMsg, keys.left), key.Matches(keyMsg, keys.right), key.Matches(keyMsg, keys.space):
			if !onSubmitButton && m.inputs[m.focus].optionBased() {
				if m.inputs[m.focus].handleOptionKey(keyMsg) {
					return m, m.scheduleDraftSave()
				}
				return m, nil
			}
		}
	}

	if m.focus == m.submitIdx() {
		return m, nil
	}

	current := &m.inputs[m.focus]
	if current.optionBased() {
		return m, nil
	}

	var cmd tea.Cmd
	if current.isTextarea() {
		current.area, cmd = current.area.Update(msg)
	} else {
		current.text, cmd = current.text.Update(msg)
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		return m, tea.Batch(cmd, m.scheduleDraftSave())
	}
	return m, cmd
}

func (m widgetModel) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m widgetModel) updateSuccess(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.again):
		return m.resetForm(), nil
	case key.Matches(keyMsg, keys.copy):
		receipt := m.successMsg
		if m.successAt != "" {
			receipt = fmt.Sprintf("%s (%s)", m.successMsg, m.successAt)
		}
		return m, cmdCopyToClipboard(receipt)
	case key.Matches(keyMsg, keys.esc):
		return m, tea.Quit
	}

	return m, nil
}

func (m widgetModel) moveFocus(delta int) widgetModel {
	if m.focus < m.submitIdx() {
		current := &m.inputs[m.focus]
		current.blurInput()
		if err := m.services.WidgetService.ValidateField(current.field, current.values()); err != nil {
			current.validationErr = err.Error()
		} else {
			current.validationErr = ""
		}
	}

	positions := m.submitIdx() + 1
	m.focus = (m.focus + delta + positions) % positions

	if m.focus < m.submitIdx() {
		m.inputs[m.focus].focusInput()
	}
	return m
}

func (m widgetModel) trySubmit() (tea.Model, tea.Cmd) {
	firstInvalid := -1
	for i := range m.inputs {
		in := &m.inputs[i]
		if err := m.services.WidgetService.ValidateField(in.field, in.values()); err != nil {
			in.validationErr = err.Error()
			if firstInvalid < 0 {
				firstInvalid = i
			}
		} else {
			in.validationErr = ""
		}
	}

	if firstInvalid >= 0 {
		if m.focus < m.submitIdx() {
			m.inputs[m.focus].blurInput()
		}
		m.focus = firstInvalid
		m.inputs[m.focus].focusInput()
		return m, nil
	}

	m.currentScreen = screenSubmitting
	return m, tea.Batch(m.spin.Tick, m.cmdSubmit(m.collect()))
}

func (m widgetModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.currentScreen = screenForm
		m.showErrorf(m.submitErrorMessage(msg))
		return m, nil
	}

	m.currentScreen = screenSuccess
	m.successMsg = msg.resp.Message
	if m.cfg.SuccessText != "" {
		m.successMsg = m.cfg.SuccessText
	}
	if m.successMsg == "" {
		m.successMsg = app.MsgSubmissionAccepted
	}
	m.successAt = msg.resp.Timestamp

	return m, m.cmdClearDraft()
}

func (m widgetModel) submitErrorMessage(msg submitDoneMsg) string {
	switch {
	case errors.Is(msg.err, service.ErrSessionExpired):
		// A fresh token lets the next attempt proceed without a real reload.
		_ = m.services.WidgetService.ResetSession()
		return app.MsgSecurityValidationFailed
	case errors.Is(msg.err, service.ErrCooldownActive):
		return app.MsgCooldownActive
	}

	if msg.resp.Error != "" {
		return msg.resp.Error
	}
	return humanizeServerUnavailableError(msg.err)
}

func (m *widgetModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m widgetModel) resetForm() widgetModel {
	inputs := make([]fieldInput, 0, len(m.inputs))
	for _, in := range m.inputs {
		inputs = append(inputs, newFieldInput(in.field))
	}

	m.inputs = inputs
	m.focus = 0
	m.currentScreen = screenForm
	m.successMsg = ""
	m.successAt = ""
	m.status = ""
	if len(m.inputs) > 0 {
		m.inputs[0].focusInput()
	}
	return m
}

// collect gathers the currently entered values keyed by field id. Fields with
// nothing entered are omitted.
func (m widgetModel) collect() map[string][]string {
	values := make(map[string][]string, len(m.inputs))
	for _, in := range m.inputs {
		if collected := in.values(); len(collected) > 0 {
			values[in.field.FieldID] = collected
		}
	}
	return values
}

func (m *widgetModel) scheduleDraftSave() tea.Cmd {
	m.draftSeq++
	seq := m.draftSeq
	return tea.Tick(draftDebounce, func(time.Time) tea.Msg {
		return draftTickMsg{seq: seq}
	})
}

func (m widgetModel) cmdSubmit(values map[string][]string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.WidgetService
	schema := m.schema
	return func() tea.Msg {
		resp, err := svc.Submit(ctx, schema, values)
		return submitDoneMsg{resp: resp, err: err}
	}
}

func (m widgetModel) cmdSaveDraft(values map[string][]string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.DraftService
	formID := m.schema.FormID
	return func() tea.Msg {
		err := svc.SaveDraft(ctx, formID, values)
		return draftSavedMsg{err: err}
	}
}

func (m widgetModel) cmdClearDraft() tea.Cmd {
	ctx := m.ctx
	svc := m.services.DraftService
	formID := m.schema.FormID
	return func() tea.Msg {
		err := svc.ClearDraft(ctx, formID)
		return draftClearedMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return submitDoneMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m widgetModel) View() string {
	var body string
	switch m.currentScreen {
	case screenForm:
		body = m.viewForm()
	case screenSubmitting:
		body = m.spin.View() + " Submitting..."
	case screenSuccess:
		body = m.viewSuccess()
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m widgetModel) viewForm() string {
	var b strings.Builder

	if m.fromCache {
		b.WriteString(bannerStyle.Render(app.MsgOfflineSchema))
		b.WriteString("\n\n")
	}

	b.WriteString(titleColor(m.schema.Color).Render(m.schema.Title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		focused := i == m.focus
		b.WriteString(in.viewLabel(focused))
		b.WriteString("\n")
		b.WriteString(indentLines(in.viewInput(focused)))
		b.WriteString("\n")
		if help := in.viewHelp(); help != "" {
			b.WriteString(indentLines(help))
			b.WriteString("\n")
		}
		if in.validationErr != "" {
			b.WriteString(indentLines(errorStyle.Render(in.validationErr)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	button := "[ " + m.submitLabel + " ]"
	if m.focus == m.submitIdx() {
		button = focusedStyle.Render("> " + button)
	} else {
		button = "  " + button
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("tab next field  space/enter choose option  ctrl+s submit  ctrl+c quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}

	return b.String()
}

func (m widgetModel) viewSuccess() string {
	var b strings.Builder

	b.WriteString(successStyle.Render("✓ " + m.successMsg))
	b.WriteString("\n")
	if m.successAt != "" {
		b.WriteString(helpStyle.Render("recorded at " + m.successAt))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("n submit another response  c copy receipt  ctrl+c quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}

	return b.String()
}
