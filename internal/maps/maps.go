package maps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"flowpath/internal/core"
)

// Layout is a named grid with a suggested spawn and goal.
type Layout struct {
	Name  string
	Flat  []int
	Spawn core.Cell
	Goal  core.Cell
}

// Grid loads the layout into a new grid.
func (l Layout) Grid() (*core.Grid, error) {
	g := core.NewGrid(1, 1)
	if err := g.LoadFlat(l.Flat); err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	return g, nil
}

var layouts = map[string]Layout{}

// Register adds a layout under its name.
func Register(l Layout) {
	if l.Name == "" || len(l.Flat) < 2 {
		return
	}
	layouts[l.Name] = l
}

// Lookup returns the layout registered under name.
func Lookup(name string) (Layout, bool) {
	l, ok := layouts[name]
	return l, ok
}

// Names lists the registered layouts in sorted order.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads the flat grid construction input: integers separated by
// whitespace or commas. A '#' starts a comment that runs to end of line.
func Parse(r io.Reader) ([]int, error) {
	var out []int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %q is not an integer", line, core.ErrInvalidGridData, f)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load resolves name as a registered layout, falling back to a file path.
// File layouts spawn at the first open cell and target the last one.
func Load(name string) (Layout, error) {
	if l, ok := Lookup(name); ok {
		return l, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return Layout{}, fmt.Errorf("unknown layout %q: %w", name, err)
	}
	defer f.Close()
	flat, err := Parse(f)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", name, err)
	}
	l := Layout{Name: name, Flat: flat}
	g, err := l.Grid()
	if err != nil {
		return Layout{}, err
	}
	first, last, ok := openExtremes(g)
	if !ok {
		return Layout{}, fmt.Errorf("layout %s: %w: no walkable cells", name, core.ErrInvalidGridData)
	}
	l.Spawn, l.Goal = first, last
	return l, nil
}

func openExtremes(g *core.Grid) (first, last core.Cell, ok bool) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.Walkable(x, y) {
				continue
			}
			if !ok {
				first = core.Cell{X: x, Y: y}
				ok = true
			}
			last = core.Cell{X: x, Y: y}
		}
	}
	return first, last, ok
}
