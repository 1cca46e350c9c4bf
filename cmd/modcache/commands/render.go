package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/modcache/internal/ui/output"
	"go.trai.ch/modcache/internal/ui/style"
)

const labelWidth = 14

// printer renders command results for humans.
type printer struct {
	w     io.Writer
	r     *lipgloss.Renderer
	label lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	muted lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile(w))

	return &printer{
		w:     w,
		r:     r,
		label: r.NewStyle().Foreground(style.Slate).Width(labelWidth),
		good:  r.NewStyle().Foreground(style.Green),
		bad:   r.NewStyle().Foreground(style.Red),
		muted: r.NewStyle().Foreground(style.Slate),
	}
}

func (p *printer) field(label, value string) {
	_, _ = fmt.Fprintln(p.w, p.label.Render(label)+value)
}

func (p *printer) flag(label string, ok bool, yes, no string) {
	if ok {
		p.field(label, p.good.Render(style.Check+" "+yes))
		return
	}
	p.field(label, p.bad.Render(style.Cross+" "+no))
}

func (p *printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

// table renders rows under headers with space-separated columns.
func (p *printer) table(headers []string, rows [][]string) {
	cell := p.r.NewStyle().PaddingRight(1)
	header := cell.Foreground(style.Iris).Bold(true)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	p.line(t.Render())
}
