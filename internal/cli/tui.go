package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	blist "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/i18n"
	"github.com/idilsaglam/shoplist/internal/list"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	basketStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// listRow adapts a model.Item to bubbles/list.Item.
type listRow struct {
	it model.Item
}

func (r listRow) Title() string       { return r.it.Text }
func (r listRow) Description() string { return "" }
func (r listRow) FilterValue() string { return r.it.Text }

// Custom delegate to control how items render (single line).
type rowDelegate struct{}

func (d rowDelegate) Height() int                                { return 1 }
func (d rowDelegate) Spacing() int                               { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *blist.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m blist.Model, index int, item blist.Item) {
	r, _ := item.(listRow)

	box := mutedStyle.Render(boxUnchecked)
	text := r.it.Text
	if r.it.IsPurchased {
		box = successStyle.Render(boxChecked)
		text = basketStyle.Render(text)
	}
	qty := ""
	if r.it.Quantity > 1 {
		qty = mutedStyle.Render(fmt.Sprintf(" ×%d", r.it.Quantity))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text+qty)
}

type modelTUI struct {
	ses *session
	t   i18n.Labels

	lst   blist.Model
	items []model.Item // canonical order: actives first

	// Inline add / edit share one text input
	adding  bool
	editing bool
	editID  string
	ti      textinput.Model
	inErr   string
}

func newModelTUI(ses *session) modelTUI {
	t := ses.t

	l := blist.New(rows(ses.items), rowDelegate{}, 0, 0)
	l.Title = listTitle(t, ses.items)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	extra := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "basket")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "qty")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "copy link")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }

	m := modelTUI{ses: ses, t: t, lst: l, items: ses.items}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = t.ListTitle + "..."
	m.ti.CharLimit = 200
	return m
}

// runInteractive starts the Bubble Tea surface. Mutations persist live
// through the controller's debounce, so closing the terminal a moment
// after the last keystroke loses nothing; the controller flushes the
// remainder on Close.
func runInteractive(ses *session) error {
	p := tea.NewProgram(newModelTUI(ses), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func rows(items []model.Item) []blist.Item {
	out := make([]blist.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listRow{it: it})
	}
	return out
}

func listTitle(t i18n.Labels, items []model.Item) string {
	return fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render(t.ListTitle),
		activeStyle.Render("•"), len(list.Active(items)),
		successStyle.Render("✔"), len(list.Purchased(items)),
	)
}

// apply adopts a mutation result: refresh the visible list and hand
// the snapshot to the controller (debounced).
func (m *modelTUI) apply(items []model.Item, changed bool) {
	if !changed {
		return
	}
	m.items = items
	m.lst.SetItems(rows(items))
	m.lst.Title = listTitle(m.t, items)
	m.ses.ctl.Changed(items)
}

// selected resolves the item the list is showing as selected. The
// visible rows may be a filtered subset of m.items, so positional
// indexing into the canonical slice would pick the wrong item; the
// row itself carries the one the user sees.
func (m modelTUI) selected() (model.Item, bool) {
	r, ok := m.lst.SelectedItem().(listRow)
	if !ok {
		return model.Item{}, false
	}
	return r.it, true
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// add mode
	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				items, changed := list.Add(m.items, m.ti.Value())
				if !changed {
					m.inErr = "text cannot be empty"
					return m, nil
				}
				m.apply(items, changed)
				m.lst.Select(0)
				m.ti.SetValue("")
				m.ti.Blur()
				m.adding = false
				m.inErr = ""
				return m, nil
			case "esc":
				m.adding = false
				m.inErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// edit mode
	if m.editing {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				items, changed := list.EditText(m.items, m.editID, m.ti.Value())
				if !changed {
					m.inErr = "text cannot be empty"
					return m, nil
				}
				m.apply(items, changed)
				m.editing = false
				m.inErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			case "esc":
				m.editing = false
				m.inErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.lst.SetSize(x.Width, x.Height-2)
		return m, nil

	case tea.KeyMsg:
		// Don't steal keys while the user is filtering.
		if m.lst.FilterState() == blist.Filtering {
			break
		}
		switch x.String() {
		case "a":
			m.adding = true
			m.ti.Focus()
			return m, textinput.Blink

		case "e":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editID = it.ID
			m.ti.SetValue(it.Text)
			m.ti.Focus()
			return m, textinput.Blink

		case "enter", " ":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			items, changed := list.Toggle(m.items, it.ID)
			m.apply(items, changed)
			return m, nil

		case "+", "=":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			items, changed := list.SetQuantity(m.items, it.ID, +1)
			m.apply(items, changed)
			return m, nil

		case "-":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			items, changed := list.SetQuantity(m.items, it.ID, -1)
			m.apply(items, changed)
			return m, nil

		case "x":
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			items, changed := list.Remove(m.items, it.ID)
			m.apply(items, changed)
			return m, nil

		case "K":
			return m.move(-1), nil

		case "J":
			return m.move(+1), nil

		case "s":
			link := m.ses.ctl.Link().String()
			if err := clipboard.WriteAll(link); err == nil {
				return m, m.lst.NewStatusMessage(m.t.LinkCopied)
			}
			return m, nil

		case "C":
			items, changed := list.Clear(m.items)
			m.apply(items, changed)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lst, cmd = m.lst.Update(msg)
	return m, cmd
}

// move reorders the selected item inside the active partition;
// purchased items stay put. Reordering needs positional indexes, so
// it is unavailable while a filter narrows the visible rows.
func (m modelTUI) move(dir int) modelTUI {
	if m.lst.FilterState() != blist.Unfiltered {
		return m
	}
	it, ok := m.selected()
	if !ok || it.IsPurchased {
		return m
	}
	src := m.lst.Index() // unfiltered and actives first, so list index == active index
	items, changed := list.Reorder(m.items, src, src+dir)
	if changed {
		m.apply(items, changed)
		m.lst.Select(src + dir)
	}
	return m
}

func (m modelTUI) View() string {
	var b strings.Builder
	b.WriteString(m.lst.View())
	if m.adding || m.editing {
		b.WriteString("\n" + m.ti.View())
		if m.inErr != "" {
			b.WriteString("  " + errorStyle.Render(m.inErr))
		}
	} else {
		b.WriteString("\n" + mutedStyle.Render(m.ses.ctl.Link().String()))
	}
	return b.String()
}

func doInteractive(opt Options) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	if err := runInteractive(s); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}
