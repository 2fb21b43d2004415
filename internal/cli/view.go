package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/buildinfo"
	"github.com/matzehuels/blockdiag/pkg/geometry"
	"github.com/matzehuels/blockdiag/pkg/render"
	"github.com/matzehuels/blockdiag/pkg/render/svg"
	"github.com/matzehuels/blockdiag/pkg/replay"
	"github.com/matzehuels/blockdiag/pkg/scene"
)

// View styles
var (
	viewFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewSelectStyle = lipgloss.NewStyle().Foreground(colorYellow)
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand opens a scenario in the terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var applySteps bool

	cmd := &cobra.Command{
		Use:   "view <scenario>",
		Short: "Drive a scenario's scene from the keyboard",
		Long: `View opens the scene of a scenario in a terminal UI. Keys are turned into
the same pointer events a graphical front-end would send:

  tab      focus the next entity and click it
  space    toggle the focused entity's selection (Ctrl-click)
  arrows   drag the focused entity, and the rest of the selection, one grid cell
  r        right-click the focused entity (parameter window)
  m        cycle the color mode
  f        flip the focused block
  c        copy the current frame as SVG to the clipboard
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := c.sceneOptions()
			if err != nil {
				return err
			}

			m := newViewModel(sc.Name, clipboard.WriteAll)
			opts.Sink = render.SinkFunc(m.paint)
			opts.ParamWindow = scene.ParamWindowFunc(m.toggleParams)

			s, err := sc.Build(opts)
			if err != nil {
				return err
			}
			if applySteps {
				if err := sc.Apply(cmd.Context(), s); err != nil {
					return err
				}
			}
			m.attach(s)

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&applySteps, "replay", false, "apply the scenario's steps before opening")
	return cmd
}

// =============================================================================
// viewModel - keyboard driver for a scene
// =============================================================================

// viewModel is a bubbletea model that owns a scene. It is a pointer so the
// scene's sink and parameter window can report back into it.
type viewModel struct {
	name   string
	scene  *scene.Scene
	focus  int
	frames int
	params map[string]bool
	status string
	copy   func(string) error
}

func newViewModel(name string, copyFn func(string) error) *viewModel {
	return &viewModel{name: name, params: make(map[string]bool), copy: copyFn}
}

func (m *viewModel) attach(s *scene.Scene) { m.scene = s }

func (m *viewModel) paint(render.Frame) error {
	m.frames++
	return nil
}

func (m *viewModel) toggleParams(id string) {
	m.params[id] = !m.params[id]
	if !m.params[id] {
		delete(m.params, id)
	}
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var err error
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		if n := m.scene.Len(); n > 0 {
			m.focus = (m.focus + 1) % n
			err = m.click(scene.Left, false)
		}
	case "shift+tab":
		if n := m.scene.Len(); n > 0 {
			m.focus = (m.focus + n - 1) % n
			err = m.click(scene.Left, false)
		}
	case " ":
		err = m.click(scene.Left, true)
	case "r":
		err = m.click(scene.Right, false)
	case "up":
		err = m.drag(geometry.Point{Y: -1})
	case "down":
		err = m.drag(geometry.Point{Y: 1})
	case "left":
		err = m.drag(geometry.Point{X: -1})
	case "right":
		err = m.drag(geometry.Point{X: 1})
	case "m":
		err = m.scene.SetMode(m.scene.Mode().Next())
		if err == nil {
			err = m.scene.Repaint()
		}
	case "f":
		if e, ok := m.focused(); ok {
			err = m.scene.Flip(e.ID())
			if err == nil {
				err = m.scene.Repaint()
			}
		}
	case "c":
		err = m.copy(string(svg.Render(m.scene.Frame(), svg.WithGrid())))
		if err == nil {
			m.status = "frame copied as SVG"
		}
	}
	if err != nil {
		m.status = "error: " + err.Error()
	}
	return m, nil
}

// focused returns the focused entity.
func (m *viewModel) focused() (block.Entity, bool) {
	ents := m.entities()
	if len(ents) == 0 {
		return nil, false
	}
	if m.focus >= len(ents) {
		m.focus = len(ents) - 1
	}
	return ents[m.focus], true
}

// entities returns the entities sorted by ID so that focus does not jump
// when a click raises an entity.
func (m *viewModel) entities() []block.Entity {
	ents := m.scene.Entities()
	slices.SortFunc(ents, func(a, b block.Entity) int { return cmp.Compare(a.ID(), b.ID()) })
	return ents
}

// center returns the middle of e's interaction region in scene coordinates.
func center(e block.Entity) geometry.Point {
	return e.InteractionRegion().Translate(e.Position()).Center()
}

func (m *viewModel) click(b scene.Button, toggle bool) error {
	e, ok := m.focused()
	if !ok {
		return nil
	}
	at := center(e)
	ev := scene.PressAt(at, b)
	ev.Toggle = toggle
	if err := m.scene.Dispatch(ev); err != nil {
		return err
	}
	return m.scene.Dispatch(scene.ReleaseAt(at))
}

func (m *viewModel) drag(dir geometry.Point) error {
	e, ok := m.focused()
	if !ok {
		return nil
	}
	step := m.scene.Constraints().Grid
	if step == 0 {
		step = 1
	}
	from := center(e)
	to := from.Add(geometry.Point{X: dir.X * step, Y: dir.Y * step})
	for _, ev := range []scene.Event{scene.PressAt(from, scene.Left), scene.MoveTo(to), scene.ReleaseAt(to)} {
		if err := m.scene.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  %s %s · mode %s · %d frames", appName, buildinfo.Short(), m.scene.Mode(), m.frames)))
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("tab focus  space toggle  arrows drag  r params  m mode  f flip  c copy  q quit"))
	b.WriteString("\n\n")

	ents := m.entities()
	focused, _ := m.focused()
	rows := make([][]string, 0, len(ents))
	for _, e := range ents {
		cursor := "  "
		if e == focused {
			cursor = "▸ "
		}
		marks := ""
		if e.Selected() {
			marks += "selected "
		}
		if e.Flipped() {
			marks += "flipped "
		}
		if m.params[e.ID()] {
			marks += "params"
		}
		rows = append(rows, []string{cursor, e.ID(), e.Kind().String(), e.Title(), e.Position().String(),
			fmt.Sprintf("%d/%d", len(e.Inputs()), len(e.Outputs())), strings.TrimSpace(marks)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Title", "Position", "In/Out", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= len(ents) {
				return lipgloss.NewStyle()
			}
			switch {
			case ents[row] == focused:
				return viewFocusStyle
			case ents[row].Selected():
				return viewSelectStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  %d wires", len(m.scene.Wires()))))
	if m.status != "" {
		b.WriteString("\n  " + m.status)
	}
	b.WriteString("\n")
	return b.String()
}
