package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Relatório de custos por tag ---

// reportLines returns the heading and metadata rows shared by every format.
func reportLines(report entity.TagCostReport) (heading, dates, tags string) {
	heading = fmt.Sprintf("AWS Cost Details: %s (%s)", cleanRichTags(report.AccountName), report.AccountID)
	dates = fmt.Sprintf("Start Date: %s  End Date: %s", report.Start, report.End)
	tags = "Selected Tags: " + formatTagFilters(report.TagFilters)
	return heading, dates, tags
}

// formatTagFilters renders filters as "key=v1,v2" sorted by key, or "None".
func formatTagFilters(filters entity.TagFilters) string {
	if len(filters) == 0 {
		return "None"
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%s", k, strings.Join(filters[k], ","))
	}
	return strings.Join(pairs, ", ")
}

func (r *ExportRepositoryImpl) ExportTagCostToCSV(report entity.TagCostReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(baseName(report, filename), outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	heading, _, _ := reportLines(report)
	rows := [][]string{
		{heading, ""},
		{"Start Date: " + report.Start, "End Date: " + report.End},
		{"Selected Tags:", formatTagFilters(report.TagFilters)},
		{"Service", "Cost (USD)"},
	}
	for _, s := range report.Services {
		rows = append(rows, []string{cleanRichTags(s.Service), fmt.Sprintf("%.2f", s.Cost)})
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%.2f", report.Total)})

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportTagCostToJSON(report entity.TagCostReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(baseName(report, filename), outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportTagCostToPDF(report entity.TagCostReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(baseName(report, filename), outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	heading, dates, tags := reportLines(report)

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	if len(heading) > 80 {
		heading = heading[:77] + "..."
	}
	pdf.CellFormat(0, 12, tr("  "+heading), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr("  "+dates), "", 1, "L", true, 0, "")
	pdf.MultiCell(0, 6, tr("  "+tags), "", "L", true)
	pdf.Ln(8)

	serviceWidth, costWidth := 140.0, 50.0
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(serviceWidth, 8, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(costWidth, 8, "Cost (USD)", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, s := range report.Services {
		pdf.CellFormat(serviceWidth, 7, tr(cleanRichTags(s.Service)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(costWidth, 7, fmt.Sprintf("$%.2f", s.Cost), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(serviceWidth, 9, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(costWidth, 9, fmt.Sprintf("$%.2f", report.Total), "", 1, "R", false, 0, "")

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS Cost Console | %s", r.now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// baseName returns filename, or AWS_Costs_<id>_<name> when it is empty.
func baseName(report entity.TagCostReport, filename string) string {
	if filename != "" {
		return filename
	}
	name := unsafeNameChars.ReplaceAllString(report.AccountName, "_")
	return fmt.Sprintf("AWS_Costs_%s_%s", report.AccountID, name)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
