package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/salesboard/internal/charts"
	"github.com/terraincognita07/salesboard/internal/dashboard"
	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/i18n"
	"github.com/terraincognita07/salesboard/internal/services"
	"gorm.io/gorm"
)

const defaultUploadLimit = 16 << 20

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	uploadLimit  int64
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	tabs         dashboard.Tabs
	loginLimiter *attemptLimiter

	repositories      *db.Repositories
	authService       *services.AuthService
	analyzerService   *services.AnalyzerService
	importService     *services.ImportService
	exportService     *services.ExportService
	predictionService *services.PredictionService
}

var pageTemplates = []string{
	"login",
	"register",
	"dashboard",
	"upload",
	"settings",
	"predictions",
	"not_found",
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": func(messages map[string]string, key string) string {
			return translateMessage(messages, key)
		},
		"currency": func(language string, value float64) string {
			return charts.NewFormatter(language).Currency(value)
		},
		"number": func(language string, value float64) string {
			return charts.NewFormatter(language).Number(value)
		},
		"count": func(language string, value int) string {
			return charts.NewFormatter(language).Number(float64(value))
		},
		"percent": func(value float64) string {
			return fmt.Sprintf("%.1f%%", value)
		},
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(layout)
		},
		"isActiveRoute": func(currentPath string, route string) bool {
			path := strings.TrimSpace(currentPath)
			if route == "/dashboard" && (path == "/" || strings.HasPrefix(path, "/?")) {
				return true
			}
			return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
		},
		"toJSON": func(value any) template.JS {
			serialized, _ := json.Marshal(value)
			return template.JS(serialized)
		},
	}
}

func NewHandler(database *gorm.DB, secret string, templateDir string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}

	funcMap := templateFuncs()
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		uploadLimit:  defaultUploadLimit,
		i18n:         i18nManager,
		templates:    templates,
		tabs:         dashboard.DefaultTabs,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories
	handler.authService = services.NewAuthService(repositories.Users)
	handler.analyzerService = services.NewAnalyzerService(repositories.Sales, repositories.Analyses, handler.location)
	handler.importService = services.NewImportService(repositories.Products, repositories.Sales, handler.location)
	handler.exportService = services.NewExportService(repositories.Sales, handler.location)
	handler.predictionService = services.NewPredictionService(repositories.Sales, repositories.Predictions, handler.location)
	return handler
}

// SetUploadLimit caps the size of an accepted sales file in bytes.
func (handler *Handler) SetUploadLimit(limit int64) {
	if limit <= 0 {
		limit = defaultUploadLimit
	}
	handler.uploadLimit = limit
}

// RefreshAnalyses brings the analysis snapshot of every user with sales up
// to date. It backs the server side auto refresh ticker and stops early when
// ctx is done.
func (handler *Handler) RefreshAnalyses(ctx context.Context) error {
	userIDs, err := handler.repositories.Sales.UserIDs()
	if err != nil {
		return fmt.Errorf("list users with sales: %w", err)
	}
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := handler.analyzerService.FullAnalysis(userID, nil, nil); err != nil && !errors.Is(err, services.ErrNoSales) {
			return fmt.Errorf("analyze sales of user %d: %w", userID, err)
		}
	}
	return nil
}
