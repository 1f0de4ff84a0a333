package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplaySummaryCards(cards []SummaryCard)
	DisplayStackedBars(title string, chart *ServiceChart)
	DisplayUsageBars(title string, bars []UsageBar)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// SummaryCard is a labelled scalar shown above a view.
type SummaryCard struct {
	Title string
	Value string
}

// ChartDataset is one stacked series of a chart.
type ChartDataset struct {
	Label string
	Data  []float64
}

// ServiceChart is the chart-ready shape of monthly service costs.
// Labels are months; there is one dataset per service.
type ServiceChart struct {
	Labels   []string
	Datasets []ChartDataset
}

// UsageLevel classifies a budget usage percentage for presentation.
type UsageLevel string

const (
	UsageNormal   UsageLevel = "normal"
	UsageWarning  UsageLevel = "warning"
	UsageCritical UsageLevel = "critical"
)

// UsageBar is a labelled percentage bar.
type UsageBar struct {
	Label   string
	Caption string
	Percent float64
	Level   UsageLevel
}
