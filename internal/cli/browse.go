package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/elemvis/elemvis/pkg/pipeline"
	"github.com/elemvis/elemvis/pkg/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive element
// browser over a loaded dataset.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		sheet      string
		attribute  string
		configPath string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "browse [dataset]",
		Short: "Browse elements interactively",
		Long: `Browse elements interactively.

Loads the dataset and opens a scrollable element list. Press enter on
an element to see all of its columns, q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			opts := pipeline.Options{Sheet: sheet, Refresh: refresh}
			if len(args) > 0 {
				opts.Source = args[0]
			}
			applyConfig(&opts, cfg)
			if opts.Source == "" {
				return fmt.Errorf("dataset is required (argument or config file)")
			}
			if attribute == "" {
				attribute = opts.Attribute
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := withLogger(cmd.Context(), c.Logger)
			t, err := runner.Load(ctx, opts)
			if err != nil {
				printError("Failed to load dataset: %s", err)
				return err
			}

			model := NewElementListModel(t, attribute)
			p := tea.NewProgram(model, tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ElementListModel); ok && m.Selected >= 0 {
				printElementDetail(t, m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet name for XLSX datasets")
	cmd.Flags().StringVarP(&attribute, "attribute", "a", "", "extra column to show in the list")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.config/elemvis/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached datasets and re-download")

	return cmd
}

// =============================================================================
// ElementListModel - Interactive element browser
// =============================================================================

// ElementListModel is the bubbletea model for the element browser.
type ElementListModel struct {
	Table     *table.Table
	Attribute string
	Cursor    int
	Selected  int
	Height    int
	Offset    int
}

// NewElementListModel creates a new element list model.
func NewElementListModel(t *table.Table, attribute string) ElementListModel {
	if attribute != "" && !t.HasColumn(attribute) {
		attribute = ""
	}
	return ElementListModel{
		Table:     t,
		Attribute: attribute,
		Cursor:    0,
		Selected:  -1,
		Height:    15,
		Offset:    0,
	}
}

func (m ElementListModel) Init() tea.Cmd {
	return nil
}

func (m ElementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Table.Len()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Table.Len() == 0 {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ElementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Elements"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.Table.Len() {
		end = m.Table.Len()
	}

	headers := []string{"", "Z", "Symbol", "Name"}
	if m.Attribute != "" {
		headers = append(headers, m.Attribute)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		row := m.Table.Row(i)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		cells := []string{
			cursor,
			m.cell(row, "atomic_number"),
			m.cell(row, "symbol"),
			m.cell(row, "name"),
		}
		if m.Attribute != "" {
			cells = append(cells, m.cell(row, m.Attribute))
		}
		rows = append(rows, cells)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Table.Len())))

	return b.String()
}

// cell renders one column of a row, blank when the column is absent or
// the value is missing.
func (m ElementListModel) cell(row table.Row, name string) string {
	if !m.Table.HasColumn(name) {
		return "—"
	}
	v, err := row.Value(name)
	if err != nil || v == nil {
		return "—"
	}
	return table.FormatCell(v)
}

// printElementDetail prints every column of the selected element after
// the browser exits.
func printElementDetail(t *table.Table, i int) {
	if i < 0 || i >= t.Len() {
		return
	}
	row := t.Row(i)

	name := ""
	if t.HasColumn("name") {
		if v, err := row.Value("name"); err == nil && v != nil {
			name = table.FormatCell(v)
		}
	}
	if name == "" {
		name = fmt.Sprintf("element %d", i+1)
	}

	fmt.Println(StyleTitle.Render(name))
	for _, col := range t.Columns() {
		v, err := row.Value(col)
		if err != nil {
			continue
		}
		val := "—"
		if v != nil {
			val = table.FormatCell(v)
		}
		fmt.Printf("  %s %s\n", StyleDim.Render(fmt.Sprintf("%-22s", col)), StyleValue.Render(val))
	}
}
