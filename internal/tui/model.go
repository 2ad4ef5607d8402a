// Package tui implements the terminal browser for the reasons catalog.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"saynope/internal/catalog"
	"saynope/internal/theme"
	"saynope/internal/validation"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Options configures a browse session.
type Options struct {
	// Store persists the theme. Nil keeps the theme for this session only.
	Store theme.Store
	// Mode is the starting theme.
	Mode theme.Mode
	// Rand overrides random selection in tests.
	Rand catalog.Rand
	// Title and Tagline head the view.
	Title   string
	Tagline string
}

type reasonItem struct {
	text     string
	category string
	picked   bool
}

func (i reasonItem) Title() string { return i.text }
func (i reasonItem) Description() string {
	if i.picked {
		return "★ random pick · " + i.category
	}
	return i.category
}
func (i reasonItem) FilterValue() string { return i.text }

// Model is the bubbletea state of the browse view.
type Model struct {
	catalog    *catalog.Catalog
	store      theme.Store
	rng        catalog.Rand
	title      string
	tagline    string
	categories []string
	catIndex   int
	pick       string
	mode       theme.Mode
	styles     Styles

	list      list.Model
	search    textinput.Model
	searching bool
	status    string
	width     int
	height    int
}

// New builds the browse model showing every reason.
func New(c *catalog.Catalog, opts Options) Model {
	rng := opts.Rand
	if rng == nil {
		rng = catalog.GlobalRand
	}
	title := opts.Title
	if title == "" {
		title = "1000 Ways to Say No"
	}

	search := textinput.New()
	search.Placeholder = "Search reasons..."
	search.Prompt = "/ "
	search.CharLimit = validation.MaxQueryLength

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := Model{
		catalog:    c,
		store:      opts.Store,
		rng:        rng,
		title:      title,
		tagline:    opts.Tagline,
		categories: append([]string{catalog.All}, c.Categories()...),
		mode:       opts.Mode,
		styles:     NewStyles(opts.Mode),
		list:       l,
		search:     search,
	}
	m.refresh()
	return m
}

// Init starts the program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Query returns the current search text.
func (m Model) Query() string { return m.search.Value() }

// Category returns the current filter category.
func (m Model) Category() string { return m.categories[m.catIndex] }

// Mode returns the current theme.
func (m Model) Mode() theme.Mode { return m.mode }

// Status returns the message shown after the last action.
func (m Model) Status() string { return m.status }

// Pick returns the last random pick, if any.
func (m Model) Pick() string { return m.pick }

// Selected returns the highlighted reason.
func (m Model) Selected() (string, bool) {
	item, ok := m.list.SelectedItem().(reasonItem)
	if !ok {
		return "", false
	}
	return item.text, true
}

// Visible returns the reasons currently listed, in order.
func (m Model) Visible() []string {
	items := m.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(reasonItem).text)
	}
	return out
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		case "tab":
			m.catIndex = (m.catIndex + 1) % len(m.categories)
			m.refresh()
			return m, nil
		case "shift+tab":
			m.catIndex = (m.catIndex + len(m.categories) - 1) % len(m.categories)
			m.refresh()
			return m, nil
		case "r":
			m.random()
			return m, nil
		case "c", "enter":
			m.copySelected()
			return m, nil
		case "t":
			m.toggleTheme()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

// random picks from the current category, clears the search and selects the pick.
func (m *Model) random() {
	category := m.Category()
	pick, ok := m.catalog.PickRandom(category, m.rng)
	if !ok {
		m.pick = ""
		m.refresh()
		m.status = m.styles.Error.Render("No reasons available")
		return
	}

	m.pick = pick
	m.search.SetValue("")
	m.refresh()
	for i, it := range m.list.Items() {
		if it.(reasonItem).text == pick {
			m.list.Select(i)
			break
		}
	}
}

func (m *Model) copySelected() {
	reason, ok := m.Selected()
	if !ok {
		return
	}
	if err := clipboardWriteAll(reason); err != nil {
		log.Debug().Err(err).Msg("failed to copy")
		m.status = m.styles.Error.Render("Failed to copy")
		return
	}
	m.status = m.styles.Success.Render("Copied to clipboard!")
}

func (m *Model) toggleTheme() {
	if m.store == nil {
		m.mode = m.mode.Toggle()
	} else {
		next, err := theme.ToggleAndSave(m.store, m.mode)
		if err != nil {
			log.Warn().Err(err).Msg("failed to save theme")
		}
		m.mode = next
	}
	m.styles = NewStyles(m.mode)
}

// refresh rebuilds the list for the current search and category.
func (m *Model) refresh() {
	category := m.Category()
	reasons := m.catalog.Filter(m.search.Value(), category)

	items := make([]list.Item, 0, len(reasons))
	for _, text := range reasons {
		owner := category
		if owner == catalog.All {
			owner, _ = m.catalog.CategoryOf(text)
		}
		items = append(items, reasonItem{text: text, category: owner, picked: text == m.pick})
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) resize() {
	// Header, chips, search box, summary and help take the rest.
	m.list.SetSize(m.width, max(m.height-10, 3))
	m.search.Width = max(m.width-8, 10)
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	if m.tagline != "" {
		b.WriteString(m.styles.Tagline.Render(m.tagline))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Search.Render(m.search.View()))
	b.WriteString("\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n")

	visible := len(m.list.Items())
	b.WriteString(m.styles.Summary.Render(catalog.Summary(visible, m.Category(), strings.TrimSpace(m.Query()))))
	b.WriteString("\n\n")

	if visible == 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("No reasons found"))
		b.WriteString("\n")
		b.WriteString(m.styles.Tagline.Render("Try adjusting your search or selecting a different category"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("/ search · tab category · r random · c copy · t theme · q quit"))
	return b.String()
}

func (m Model) renderChips() string {
	counts := m.catalog.Counts()
	chips := make([]string, 0, len(m.categories))
	for i, name := range m.categories {
		n := counts.Total
		if name != catalog.All {
			n = counts.PerCategory[name]
		}
		label := fmt.Sprintf("%s (%d)", name, n)
		if i == m.catIndex {
			chips = append(chips, m.styles.Active.Render(label))
		} else {
			chips = append(chips, m.styles.Chip.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// Run starts the browse view on the terminal.
func Run(c *catalog.Catalog, opts Options) error {
	_, err := tea.NewProgram(New(c, opts), tea.WithAltScreen()).Run()
	return err
}
