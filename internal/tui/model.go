// Package tui is the terminal front end: an "add contact" form beside the
// searchable contact list, both backed by the client store.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contacthub/internal/models"
	"contacthub/internal/store"
	"contacthub/internal/ui/form"
	"contacthub/internal/ui/list"
	"contacthub/internal/validation"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 3500 * time.Millisecond

type focus int

const (
	focusName focus = iota
	focusEmail
	focusPhone
	focusMessage
	focusSearch
	focusList
	focusCount
)

var formFields = []validation.Field{
	validation.FieldName,
	validation.FieldEmail,
	validation.FieldPhone,
	validation.FieldMessage,
}

var fieldLabels = map[validation.Field]string{
	validation.FieldName:    "Full Name",
	validation.FieldEmail:   "Email Address",
	validation.FieldPhone:   "Phone Number",
	validation.FieldMessage: "Message (optional)",
}

type (
	loadedMsg       struct{ err error }
	submitDoneMsg   struct{ res store.Result }
	deleteDoneMsg   struct{ res store.Result }
	storeChangedMsg struct{}
	toastMsg        store.Notification
	toastExpiredMsg struct{ seq int }
)

// chanNotifier forwards store notifications to the program.
type chanNotifier chan store.Notification

func (c chanNotifier) Notify(n store.Notification) {
	select {
	case c <- n:
	default:
	}
}

type toast struct {
	seq  int
	note store.Notification
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	store   *store.Store
	notes   chanNotifier
	changes <-chan struct{}

	form   *form.Form
	view   *list.View
	inputs []textinput.Model
	search textinput.Model

	focus  focus
	cursor int
	toast  *toast
	seq    int
	now    func() time.Time
	width  int
	styles Styles
}

// NewModel wires a store around api. The caller owns nothing; quitting the
// program closes the store.
func NewModel(ctx context.Context, api store.ContactAPI) Model {
	notes := make(chanNotifier, 16)
	s := store.New(api, notes)

	inputs := make([]textinput.Model, len(formFields))
	placeholders := []string{"Enter full name", "email@example.com", "+1 (555) 123-4567", "Write a note or message..."}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 1000
		ti.Width = 36
		inputs[i] = ti
	}
	inputs[0].Focus()

	search := textinput.New()
	search.Placeholder = "Search by name, email, or phone..."
	search.Prompt = "/ "
	search.Width = 40

	return Model{
		ctx:     ctx,
		store:   s,
		notes:   notes,
		changes: s.Subscribe(),
		form:    form.New(),
		view:    list.NewView(),
		inputs:  inputs,
		search:  search,
		now:     time.Now,
		styles:  DefaultStyles(),
	}
}

// Store exposes the backing store.
func (m Model) Store() *store.Store { return m.store }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.load(),
		m.waitForNote(),
		m.waitForChange(),
	)
}

func (m Model) load() tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: s.Init(ctx)}
	}
}

func (m Model) waitForNote() tea.Cmd {
	notes := m.notes
	return func() tea.Msg {
		return toastMsg(<-notes)
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, m.waitForChange()

	case toastMsg:
		m.seq++
		m.toast = &toast{seq: m.seq, note: store.Notification(msg)}
		seq := m.seq
		return m, tea.Batch(
			m.waitForNote(),
			tea.Tick(ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} }),
		)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
		return m, nil

	case submitDoneMsg:
		if msg.res.Success {
			m.setFocus(focusName)
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
		}
		m.form.Complete(msg.res.Success)
		return m, nil

	case deleteDoneMsg:
		m.view.Finish()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.store.Close()
		return m, tea.Quit
	}

	if m.view.Pending() {
		switch key {
		case "y", "Y":
			id, ok := m.view.Confirm()
			if !ok {
				return m, nil
			}
			s, ctx := m.store, m.ctx
			return m, func() tea.Msg { return deleteDoneMsg{res: s.DeleteContact(ctx, id)} }
		case "n", "N", "esc":
			m.view.CancelDelete()
		}
		return m, nil
	}

	switch key {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+f":
		m.setFocus(focusSearch)
		return m, nil
	case "ctrl+s":
		m.view.Sort = m.view.Sort.Next()
		return m, nil
	case "ctrl+d":
		// Only the highlighted row can be deleted.
		if m.focus != focusList {
			break
		}
		rows := m.rows()
		if m.cursor < len(rows) {
			m.view.RequestDelete(rows[m.cursor].ID)
		}
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		switch {
		case m.focus == focusSearch:
			m.setFocus(focusList)
			return m, nil
		case m.focus <= focusMessage:
			return m.submit()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.focus <= focusMessage:
		if m.form.Submitting() {
			return m, nil
		}
		i := int(m.focus)
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		m.form.Change(formFields[i], m.inputs[i].Value())
	case m.focus == focusSearch:
		m.search, cmd = m.search.Update(msg)
		m.view.Search = m.search.Value()
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.focus <= focusMessage {
		m.form.Blur(formFields[m.focus])
	}
	in, ok := m.form.Prepare()
	if !ok {
		return m, nil
	}
	s, ctx := m.store, m.ctx
	return m, func() tea.Msg { return submitDoneMsg{res: s.AddContact(ctx, in)} }
}

// setFocus moves focus, blurring the form field being left.
func (m *Model) setFocus(f focus) {
	if m.focus <= focusMessage && m.focus != f {
		m.form.Blur(formFields[m.focus])
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.search.Blur()

	m.focus = f
	switch {
	case f <= focusMessage:
		m.inputs[f].Focus()
	case f == focusSearch:
		m.search.Focus()
	}
}

func (m Model) rows() []models.Contact {
	return m.view.Derive(m.store.Contacts())
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	left := m.renderForm()
	right := m.renderList()

	formPane, listPane := m.styles.Pane, m.styles.Pane
	if m.focus <= focusMessage {
		formPane = m.styles.FocusedPane
	} else {
		listPane = m.styles.FocusedPane
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, formPane.Render(left), " ", listPane.Render(right))

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.toast != nil {
		style := m.styles.ToastOK
		if m.toast.note.Level == store.LevelError {
			style = m.styles.ToastError
		}
		b.WriteString(style.Render(m.toast.note.Message))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("tab/shift+tab fields · enter submit · ctrl+f search · ctrl+s sort · ctrl+d delete · ctrl+c quit"))
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add New Contact"))
	b.WriteString("\n")

	for i, field := range formFields {
		b.WriteString(m.styles.Label.Render(fieldLabels[field]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg := m.form.VisibleError(field); msg != "" {
			b.WriteString(m.styles.FieldError.Render("! " + msg))
		}
		b.WriteString("\n")
	}

	switch {
	case m.form.Submitting():
		b.WriteString(m.styles.ButtonOff.Render("Adding..."))
	case m.form.CanSubmit():
		b.WriteString(m.styles.Button.Render("Add Contact"))
	default:
		b.WriteString(m.styles.ButtonOff.Render("Add Contact"))
	}
	return b.String()
}

func (m Model) renderList() string {
	all := m.store.Contacts()
	rows := m.view.Derive(all)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Contacts  Total %d", len(all))))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Sort: " + m.view.Sort.Label()))
	b.WriteString("\n\n")

	empty := m.view.EmptyState(m.store.Loading(), len(all), len(rows))
	if empty.Kind != list.NotEmpty {
		b.WriteString(m.styles.Label.Render(empty.Title))
		if empty.Hint != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render(empty.Hint))
		}
		return b.String()
	}

	now := m.now()
	for i, c := range rows {
		style := m.styles.Row
		if i == m.cursor && m.focus == focusList {
			style = m.styles.SelectedRow
		}

		message := c.Message
		if message == "" {
			message = "-"
		}
		status := list.RelativeDate(c.CreatedAt, now)
		if m.view.RowBusy(c.ID) {
			status = "deleting..."
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Avatar.Render(list.Initials(c.Name)),
			style.Render(fmt.Sprintf("%s <%s>  %s  %s  %s", c.Name, c.Email, c.Phone, truncate(message, 24), m.styles.Muted.Render(status))),
		)
		b.WriteString(line)
		b.WriteString("\n")

		if m.view.Pending() && m.view.DeletingID == c.ID {
			b.WriteString(m.styles.Confirm.Render("  Are you sure you want to delete this contact? (y/n)"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Run starts the terminal front end and blocks until the user quits.
func Run(ctx context.Context, api store.ContactAPI) error {
	m := NewModel(ctx, api)
	defer m.store.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
