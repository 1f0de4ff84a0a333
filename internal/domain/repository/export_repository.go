package repository

import (
	"github.com/diillson/aws-cost-console/internal/domain/entity"
)

type ExportRepository interface {
	ExportTagCostToCSV(report entity.TagCostReport, filename, outputDir string) (string, error)
	ExportTagCostToJSON(report entity.TagCostReport, filename, outputDir string) (string, error)
	ExportTagCostToPDF(report entity.TagCostReport, filename, outputDir string) (string, error)
}
