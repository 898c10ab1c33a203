// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is an interactive terminal browser over the search
// controller. Every edit of the search bar issues a search, so fast typing
// exercises the controller's supersede path; the list always shows the
// latest published state.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/imagesearch/internal/detail"
	"github.com/pdiddy/imagesearch/pkg/types"
)

// Searcher is the part of search.Controller the browser drives.
type Searcher interface {
	Search(term string)
	Select(item types.ImageItem) types.ImageItem
}

type stateMsg struct{ state types.SearchState }

type streamClosedMsg struct{}

// waitForState reads the next state from ch as a tea message.
func waitForState(ch <-chan types.SearchState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return stateMsg{state: st}
	}
}

type styles struct {
	title    lipgloss.Style
	dim      lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	loading  lipgloss.Style
	label    lipgloss.Style
	box      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		dim:      lipgloss.NewStyle().Faint(true),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		loading:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		label:    lipgloss.NewStyle().Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
	}
}

const defaultRows = 15

// Model is the bubbletea model for the browser.
type Model struct {
	searcher Searcher
	states   <-chan types.SearchState

	input  textinput.Model
	styles styles

	state  types.SearchState
	cursor int
	detail *detail.View

	width  int
	height int
}

// New returns a browser that sends searches to s and renders states read
// from states (typically Controller.Watch).
func New(s Searcher, states <-chan types.SearchState) Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Focus()

	return Model{
		searcher: s,
		states:   states,
		input:    ti,
		styles:   newStyles(),
	}
}

// Init starts listening for states.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForState(m.states))
}

// Update handles state updates and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if msg.state.Seq != m.state.Seq {
			m.cursor = 0
		}
		m.state = msg.state
		return m, waitForState(m.states)

	case streamClosedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.detail != nil {
		switch msg.String() {
		case "esc", "backspace", "enter", "q":
			m.detail = nil
		}
		return m, nil
	}

	items := m.items()
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(items) {
			v := detail.NewView(m.searcher.Select(items[m.cursor]))
			m.detail = &v
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if term := m.input.Value(); term != before {
		m.searcher.Search(term)
	}
	return m, cmd
}

func (m Model) items() []types.ImageItem {
	if m.state.Status != types.StatusSuccess {
		return nil
	}
	return m.state.Data
}

// View renders the browser.
func (m Model) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("imagesearch"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state.Status {
	case types.StatusLoading:
		b.WriteString(m.styles.loading.Render(fmt.Sprintf("Searching %q...", m.state.Term)))
		b.WriteString("\n")
	case types.StatusError:
		b.WriteString(m.styles.err.Render(m.state.Err.Error()))
		b.WriteString("\n")
	case types.StatusSuccess:
		m.writeList(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render("type to search • ↑/↓ move • enter details • esc quit"))
	return b.String()
}

func (m Model) writeList(b *strings.Builder) {
	items := m.state.Data
	if len(items) == 0 {
		b.WriteString(m.styles.dim.Render(fmt.Sprintf("No results for %q.", m.state.Term)))
		b.WriteString("\n")
		return
	}

	rows := defaultRows
	if m.height > 8 {
		rows = m.height - 8
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(items))

	for i := start; i < end; i++ {
		line := fmt.Sprintf("%3d. %s by %s", i+1, titleOrLink(items[i]), items[i].AuthorName())
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(items))))
	b.WriteString("\n")
}

func (m Model) viewDetail() string {
	v := m.detail
	var b strings.Builder
	b.WriteString(m.styles.title.Render(v.Title))
	b.WriteString("\n")
	if v.Description != "" {
		b.WriteString(v.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("Author:"), v.Author)
	fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("Published Date:"), v.Taken)
	fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("Image:"), v.ImageURL)
	if len(v.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", m.styles.label.Render("Tags:"), strings.Join(v.Tags, ", "))
	}
	return m.styles.box.Render(b.String()) + "\n" + m.styles.dim.Render("esc back")
}

func titleOrLink(it types.ImageItem) string {
	if strings.TrimSpace(it.Title) != "" {
		return it.Title
	}
	return it.Link
}
