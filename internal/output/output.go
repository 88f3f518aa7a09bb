package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// columnGap separates table columns.
const columnGap = "  "

// Printer renders command results either for a terminal or as JSON/YAML
// documents. In human mode results go to the main writer and diagnostics to
// the error writer; in JSON mode everything, errors included, is a JSON
// document on the main writer.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
	color  bool
	theme  theme
}

// theme is the set of lipgloss styles a Printer renders with.
type theme struct {
	err    lipgloss.Style
	warn   lipgloss.Style
	header lipgloss.Style
	title  lipgloss.Style
	rule   lipgloss.Style
	key    lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.TerminalColor
}

func newTheme(color bool) theme {
	if !color {
		plain := lipgloss.NewStyle()
		return theme{
			err: plain, warn: plain, header: plain, title: plain,
			rule: plain, key: plain, accent: plain, dim: plain,
			border: lipgloss.NoColor{},
		}
	}
	return theme{
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		header: lipgloss.NewStyle().Bold(true),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		rule:   lipgloss.NewStyle().Faint(true),
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		border: lipgloss.Color("8"),
	}
}

// NewPrinter returns a Printer writing to w. jsonMode selects JSON output;
// color enables styling of human output (see ResolveColorMode).
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{
		out:    w,
		errOut: w,
		json:   jsonMode,
		color:  color,
		theme:  newTheme(color),
	}
}

// WithStderr sends human-mode errors and warnings to w.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errOut = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Error reports err with its exit classification: {"error", "code"} in JSON
// mode, a styled line on the error writer otherwise.
func (p *Printer) Error(err error) {
	exitErr := FromError(err)
	if p.json {
		p.write(p.out, string(ErrorJSON(exitErr.Message, exitErr.Code))+"\n")
		return
	}
	p.write(p.errOut, p.theme.err.Render("Error")+": "+exitErr.Message+"\n")
}

// Warn reports a problem that does not stop the command.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]string{"warning": msg})
		return
	}
	p.write(p.errOut, p.theme.warn.Render("Warning")+": "+msg+"\n")
}

// Println writes its operands and a newline to the main writer.
func (p *Printer) Println(args ...any) {
	p.write(p.out, fmt.Sprintln(args...))
}

// WriteJSON writes data as one indented JSON document.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteYAML writes data as one YAML document.
func (p *Printer) WriteYAML(data any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Accent styles ref decorations.
func (p *Printer) Accent(text string) string {
	return p.theme.accent.Render(text)
}

// Dim styles hashes and other secondary text.
func (p *Printer) Dim(text string) string {
	return p.theme.dim.Render(text)
}

// ErrorJSON is the JSON error document: {"error": message, "code": N}.
func ErrorJSON(message string, code int) []byte {
	data, _ := json.Marshal(struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{message, code})
	return data
}

// Table writes rows under headers with columns padded to their widest cell.
// The last column is not padded. Cells beyond the header count are dropped.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	p.write(p.out, p.tableLine(headers, widths, p.theme.header))
	for _, row := range rows {
		p.write(p.out, p.tableLine(row, widths, lipgloss.NewStyle()))
	}
}

func (p *Printer) tableLine(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	last := min(len(cells), len(widths)) - 1
	for i := 0; i <= last; i++ {
		cell := cells[i]
		if i > 0 {
			b.WriteString(columnGap)
		}
		if i < last {
			cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		b.WriteString(style.Render(cell))
	}
	b.WriteString("\n")
	return b.String()
}

// Box writes content under a title. With color it is framed by a rounded
// border; plain output is the title, a blank line and the content.
func (p *Printer) Box(title, content string) {
	if !p.color {
		if title != "" {
			p.write(p.out, title+"\n\n")
		}
		p.write(p.out, content+"\n")
		return
	}
	body := content
	if title != "" {
		body = p.theme.title.Render(title) + "\n\n" + content
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.border).
		Padding(0, 1)
	p.write(p.out, frame.Render(body)+"\n")
}

// Section writes a blank line, then title underlined to its width.
func (p *Printer) Section(title string) {
	rule := strings.Repeat("─", lipgloss.Width(title))
	p.write(p.out, "\n"+p.theme.title.Render(title)+"\n"+p.theme.rule.Render(rule)+"\n")
}

// KeyValue writes "key: value".
func (p *Printer) KeyValue(key, value string) {
	p.write(p.out, p.theme.key.Render(key+":")+" "+value+"\n")
}

// write ignores errors: a closed stdout or stderr leaves nowhere to report them.
func (*Printer) write(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
