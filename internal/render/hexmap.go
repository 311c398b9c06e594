// Package render draws layouts as text hex maps for the terminal.
//
// Hexes are laid out in doubled-width coordinates (col = 2q + r, row = r),
// so every other row is shifted half a hex. Each hex prints as three
// characters: the kind's initial, the height, and '*' on an anchor.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/talgya/hexplanner/internal/planner"
	"github.com/talgya/hexplanner/internal/world"
)

const hexWidth = 3

// Kind colours match the map legend of the web UI.
var kindColors = map[world.Kind]lipgloss.Color{
	world.Mountain: "#757273",
	world.Field:    "#E3AF23",
	world.Tree:     "#868B27",
	world.Water:    "#247D8C",
	world.Building: "#B2313F",
}

// Renderer styles output for one destination writer.
type Renderer struct {
	lg *lipgloss.Renderer
}

// New returns a renderer whose colour support follows w.
func New(w io.Writer) *Renderer {
	return &Renderer{lg: lipgloss.NewRenderer(w)}
}

// Solution draws one layout.
func (r *Renderer) Solution(sol planner.Solution) string {
	return r.draw(sol)
}

// Pattern draws a shape definition with its anchor at the origin.
func (r *Renderer) Pattern(cells []world.ReferenceCell) string {
	sol := make(planner.Solution, 0, len(cells))
	for _, c := range cells {
		at := world.HexCoord{}
		if !c.Anchor {
			at = c.Offset()
		}
		sol = append(sol, planner.Cell{Q: at.Q, R: at.R, S: at.S(), Kind: c.Kind, Anchor: c.Anchor, Height: c.Height})
	}
	return r.draw(sol)
}

// Solutions writes every layout with a numbered header.
func (r *Renderer) Solutions(w io.Writer, sols []planner.Solution) error {
	header := r.lg.NewStyle().Bold(true)
	for i, sol := range sols {
		title := fmt.Sprintf("#%d  %d cells, %d anchors", i+1, len(sol), sol.Anchors())
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header.Render(title), r.draw(sol)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) draw(sol planner.Solution) string {
	if len(sol) == 0 {
		return ""
	}

	minCol, maxCol := 2*sol[0].Q+sol[0].R, 2*sol[0].Q+sol[0].R
	minRow, maxRow := sol[0].R, sol[0].R
	byPos := make(map[[2]int]planner.Cell, len(sol))
	for _, c := range sol {
		col := 2*c.Q + c.R
		minCol, maxCol = min(minCol, col), max(maxCol, col)
		minRow, maxRow = min(minRow, c.R), max(maxRow, c.R)
		byPos[[2]int{col, c.R}] = c
	}

	var b strings.Builder
	for row := minRow; row <= maxRow; row++ {
		var line strings.Builder
		for col := minCol; col <= maxCol; col++ {
			c, ok := byPos[[2]int{col, row}]
			if !ok {
				line.WriteString(strings.Repeat(" ", hexWidth))
				continue
			}
			line.WriteString(r.token(c))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) token(c planner.Cell) string {
	initial := "?"
	if c.Kind != "" {
		initial = strings.ToUpper(string([]rune(string(c.Kind))[:1]))
	}
	mark := " "
	if c.Anchor {
		mark = "*"
	}
	text := fmt.Sprintf("%s%d%s", initial, c.Height, mark)

	style := r.lg.NewStyle()
	if color, ok := kindColors[c.Kind]; ok {
		style = style.Foreground(color)
	}
	if c.Anchor {
		style = style.Bold(true)
	}
	return style.Render(text)
}

// ShapeTable lists catalog shapes with their target anchor counts.
func (r *Renderer) ShapeTable(shapes []world.Shape) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "KIND", "ANCHORS", "CELLS")
	for _, s := range shapes {
		name := s.Name
		if s.EnName != "" {
			name = fmt.Sprintf("%s (%s)", s.Name, s.EnName)
		}
		t.Row(
			fmt.Sprintf("%d", s.ID),
			name,
			s.Kind,
			fmt.Sprintf("%d", s.Iterations()),
			fmt.Sprintf("%d", len(s.Pattern)),
		)
	}
	return t.Render()
}
