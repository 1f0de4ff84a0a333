package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	out         io.Writer
	interactive bool
}

// NewConsole cria um novo Console que escreve em stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout, interactive: true}
}

// NewConsoleWithWriter creates a Console that writes its own output to w. Spinners are
// disabled.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	if !c.interactive {
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).WithRemoveWhenDone(true).Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed     = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable + "\n"
}

// DisplaySummaryCards exibe os cartões de resumo lado a lado.
func (c *Console) DisplaySummaryCards(cards []types.SummaryCard) {
	if len(cards) == 0 {
		return
	}
	fmt.Fprintln(c.out, RenderSummaryCards(cards))
}

// RenderSummaryCards draws each card as a titled box, all on one row.
func RenderSummaryCards(cards []types.SummaryCard) string {
	row := make([]pterm.Panel, len(cards))
	for i, card := range cards {
		box := pterm.DefaultBox.
			WithTitle(card.Title).
			WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
			Sprint(BrightCyan(card.Value))
		row[i] = pterm.Panel{Data: box}
	}
	rendered, _ := pterm.DefaultPanel.WithPanels(pterm.Panels{row}).WithPadding(2).Srender()
	return rendered
}

const barWidth = 40

var seriesColors = []pterm.Color{
	pterm.FgLightBlue,
	pterm.FgLightGreen,
	pterm.FgYellow,
	pterm.FgLightMagenta,
	pterm.FgLightCyan,
	pterm.FgLightRed,
	pterm.FgBlue,
	pterm.FgGreen,
	pterm.FgMagenta,
	pterm.FgCyan,
}

// DisplayStackedBars exibe um gráfico de barras empilhadas por mês.
func (c *Console) DisplayStackedBars(title string, chart *types.ServiceChart) {
	if chart == nil || len(chart.Labels) == 0 {
		return
	}
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(RenderStackedBars(chart))
	fmt.Fprintln(c.out, "\n"+panel)
}

// RenderStackedBars draws one bar per label with a segment per dataset, scaled to the
// largest label total, followed by a legend.
func RenderStackedBars(chart *types.ServiceChart) string {
	totals := make([]float64, len(chart.Labels))
	maxTotal := 0.0
	for i := range chart.Labels {
		for _, ds := range chart.Datasets {
			if i < len(ds.Data) && ds.Data[i] > 0 {
				totals[i] += ds.Data[i]
			}
		}
		if totals[i] > maxTotal {
			maxTotal = totals[i]
		}
	}

	labelWidth := 0
	for _, l := range chart.Labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	var sb strings.Builder
	for i, label := range chart.Labels {
		var bar strings.Builder
		if maxTotal > 0 {
			for d, ds := range chart.Datasets {
				if i >= len(ds.Data) || ds.Data[i] <= 0 {
					continue
				}
				n := int(ds.Data[i] / maxTotal * barWidth)
				if n == 0 {
					continue
				}
				bar.WriteString(seriesColor(d).Sprint(strings.Repeat("█", n)))
			}
		}
		fmt.Fprintf(&sb, "%-*s %s $%.2f\n", labelWidth, label, bar.String(), totals[i])
	}

	sb.WriteString("\n")
	for d, ds := range chart.Datasets {
		fmt.Fprintf(&sb, "%s %s  ", seriesColor(d).Sprint("■"), ds.Label)
		if (d+1)%3 == 0 {
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), " \n")
}

func seriesColor(i int) pterm.Color {
	return seriesColors[i%len(seriesColors)]
}

// DisplayUsageBars exibe barras de uso coloridas pelo nível.
func (c *Console) DisplayUsageBars(title string, bars []types.UsageBar) {
	if len(bars) == 0 {
		return
	}
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(RenderUsageBars(bars))
	fmt.Fprintln(c.out, "\n"+panel)
}

// RenderUsageBars draws one labelled percentage bar per entry.
func RenderUsageBars(bars []types.UsageBar) string {
	lines := make([]string, 0, len(bars)*3)
	for _, b := range bars {
		filled := int(b.Percent / 100 * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		if filled < 0 {
			filled = 0
		}
		paint := levelColor(b.Level)
		bar := paint(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)

		lines = append(lines,
			BrightMagenta(b.Label),
			fmt.Sprintf("%s %s", bar, paint(fmt.Sprintf("%.1f%%", b.Percent))),
			b.Caption,
		)
	}
	return strings.Join(lines, "\n")
}

func levelColor(level types.UsageLevel) func(a ...interface{}) string {
	switch level {
	case types.UsageCritical:
		return BrightRed
	case types.UsageWarning:
		return BrightYellow
	default:
		return BrightGreen
	}
}
