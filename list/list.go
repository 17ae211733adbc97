// Package list renders resolved palette cells for the terminal in grid,
// lines and list modes.
package list

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atma-cli/atma/cell"
	"github.com/atma-cli/atma/color"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/style"
	"github.com/atma-cli/atma/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options select the layout and styling of the rendered listing.
type Options struct {
	Mode        string // grid, lines or list
	ColorStyle  string // tile, none or text
	TextStyle   string // none, hex6, hex3 or rgb
	RuleStyle   string // colored, none or plain
	LineStyle   string // auto, none or a fixed width
	GutterStyle string // auto, none or a fixed width

	MaxWidth   int
	MaxColumns int
	MaxHeight  int
	NoColor    bool
}

// DefaultOptions reads the configured list styling.
func DefaultOptions() Options {
	return Options{
		Mode:        viper.GetString(key.ListMode),
		ColorStyle:  viper.GetString(key.ListColorStyle),
		TextStyle:   viper.GetString(key.ListTextStyle),
		RuleStyle:   viper.GetString(key.ListRuleStyle),
		LineStyle:   viper.GetString(key.ListLineStyle),
		GutterStyle: viper.GetString(key.ListGutterStyle),
	}
}

// gutter returns the separator between the reference column and the cell
// content.
func (o Options) gutter() string {
	switch o.GutterStyle {
	case "none":
		return ""
	case "", "auto":
		return " "
	default:
		if n, err := strconv.Atoi(o.GutterStyle); err == nil && n >= 0 {
			return strings.Repeat(" ", n)
		}
		return " "
	}
}

// lineRef formats the reference column; LineStyle "none" suppresses it.
func (o Options) lineRef(idx uint32) string {
	switch o.LineStyle {
	case "none":
		return ""
	case "", "auto":
		return fmt.Sprintf("%-6s", fmt.Sprintf(":%d", idx))
	default:
		if n, err := strconv.Atoi(o.LineStyle); err == nil && n > 0 {
			return fmt.Sprintf("%-*s", n, fmt.Sprintf(":%d", idx))
		}
		return fmt.Sprintf("%-6s", fmt.Sprintf(":%d", idx))
	}
}

// rule renders a horizontal separator per the rule style.
func (o Options) rule(width int) string {
	switch o.RuleStyle {
	case "none", "":
		return ""
	case "plain":
		return strings.Repeat("-", width) + "\n"
	default:
		return style.Faint(strings.Repeat("─", width)) + "\n"
	}
}

// Entry is one resolved cell handed to the renderer.
type Entry struct {
	Idx    uint32
	Color  mo.Option[color.Color]
	Name   string
	Pos    mo.Option[cell.Position]
	Groups []string
}

// Resolve evaluates a selection into renderer entries.
func Resolve(p *palette.Palette, sel cell.Selection) ([]Entry, error) {
	idxs, err := p.Select(sel)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(idxs))
	for _, idx := range idxs {
		c, err := p.Color(cell.Index(idx))
		if err != nil {
			return nil, err
		}
		e := Entry{Idx: idx, Color: c}
		if name, ok := p.NameOf(idx); ok {
			e.Name = name
		}
		if pos, ok := p.PositionOf(idx); ok {
			e.Pos = mo.Some(pos)
		}
		e.Groups = p.GroupsOf(idx)
		entries = append(entries, e)
	}
	return entries, nil
}

func (o Options) colorText(c color.Color) string {
	switch o.TextStyle {
	case "none":
		return ""
	case "hex3":
		return c.Hex3()
	case "rgb":
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return c.Hex()
	}
}

func (o Options) tile(c mo.Option[color.Color]) string {
	col, ok := c.Get()
	if !ok {
		return "  --  "
	}
	if o.NoColor || o.ColorStyle == "none" {
		return ""
	}
	if o.ColorStyle == "text" {
		return o.colorText(col)
	}
	return style.Bg(lipgloss.Color(col.Hex()))("      ")
}

func (o Options) width() int {
	if o.MaxWidth > 0 {
		return o.MaxWidth
	}
	if w, _, err := util.TerminalSize(); err == nil && w > 0 {
		return w
	}
	return 80
}

// Render produces the terminal listing for a selection.
func Render(p *palette.Palette, sel cell.Selection, opts Options) (string, error) {
	entries, err := Resolve(p, sel)
	if err != nil {
		return "", err
	}
	switch opts.Mode {
	case "lines":
		return opts.renderLines(entries), nil
	case "list":
		return opts.renderList(entries), nil
	default:
		return opts.renderGrid(entries), nil
	}
}

// renderList shows one cell per line with full metadata.
func (o Options) renderList(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		line := o.lineRef(e.Idx) + o.gutter() + o.tile(e.Color)
		if c, ok := e.Color.Get(); ok {
			if text := o.colorText(c); text != "" && o.ColorStyle != "text" {
				line += " " + text
			}
		} else {
			line += " (empty)"
		}
		if e.Name != "" {
			line += " " + style.Bold(e.Name)
		}
		if pos, ok := e.Pos.Get(); ok {
			line += " " + style.Faint(pos.String())
		}
		if len(e.Groups) > 0 {
			line += " " + style.Faint("["+strings.Join(e.Groups, ", ")+"]")
		}
		b.WriteString(truncate.String(line, uint(o.width())))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderLines shows tile and text pairs, one cell per line.
func (o Options) renderLines(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(o.tile(e.Color))
		if c, ok := e.Color.Get(); ok {
			if text := o.colorText(c); text != "" {
				b.WriteByte(' ')
				b.WriteString(text)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderGrid packs tiles into rows bounded by the terminal width.
func (o Options) renderGrid(entries []Entry) string {
	cols := o.MaxColumns
	if cols <= 0 {
		cols = util.Max(1, o.width()/8)
	}

	var b strings.Builder
	rows := 0
	for i, e := range entries {
		b.WriteString(o.tile(e.Color))
		b.WriteByte(' ')
		if (i+1)%cols == 0 || i == len(entries)-1 {
			b.WriteByte('\n')
			rows++
			if o.MaxHeight > 0 && rows >= o.MaxHeight {
				break
			}
		}
	}
	b.WriteString(o.rule(util.Min(o.width(), cols*7)))
	return b.String()
}
