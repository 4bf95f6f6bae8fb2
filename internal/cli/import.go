package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/services"
	"gorm.io/gorm"
)

// ImportSales loads a csv or xlsx file for the account matching login and
// records a fresh analysis snapshot.
func ImportSales(database *gorm.DB, out io.Writer, login string, filePath string, location *time.Location) (services.ImportSummary, error) {
	if strings.TrimSpace(filePath) == "" {
		return services.ImportSummary{}, errors.New("file is required")
	}

	repositories := db.NewRepositories(database)
	user, err := findUser(repositories.Users, strings.TrimSpace(login))
	if err != nil {
		return services.ImportSummary{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return services.ImportSummary{}, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	importer := services.NewImportService(repositories.Products, repositories.Sales, location)
	summary, err := importer.Import(user.ID, filepath.Base(filePath), file)
	if err != nil {
		return services.ImportSummary{}, fmt.Errorf("import %s: %w", filePath, err)
	}

	analyzer := services.NewAnalyzerService(repositories.Sales, repositories.Analyses, location)
	if _, err := analyzer.FullAnalysis(user.ID, nil, nil); err != nil {
		return summary, fmt.Errorf("analyze imported sales: %w", err)
	}

	fmt.Fprintf(out, "Imported %d rows (%d products, total %.2f) for %s\n", summary.TotalRows, summary.UniqueProducts, summary.TotalSales, user.Email)
	if summary.DateRange != nil {
		fmt.Fprintf(out, "Date range: %s .. %s\n", summary.DateRange.Min.Format("2006-01-02"), summary.DateRange.Max.Format("2006-01-02"))
	}
	for _, warning := range summary.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
	return summary, nil
}
