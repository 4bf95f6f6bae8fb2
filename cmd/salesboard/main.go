package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/salesboard/internal/api"
	"github.com/terraincognita07/salesboard/internal/cli"
	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/i18n"
	"github.com/terraincognita07/salesboard/internal/services"
	"gorm.io/gorm"
)

const (
	appName               = "salesboard"
	insecureSecretDefault = "change_me_in_production"
	exampleSecretValue    = "replace_with_at_least_32_random_characters"
	minSecretKeyLength    = 32
	defaultUploadLimitMB  = 16
)

var (
	flagDBPath   string
	flagTimezone string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Sales analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDBPath, "db", getEnv("DB_PATH", filepath.Join("data", "salesboard.db")), "path to the sqlite database")
	root.PersistentFlags().StringVar(&flagTimezone, "tz", getEnv("TZ", "UTC"), "timezone used for calendar boundaries")

	root.AddCommand(newServeCommand(), newImportCommand(), newCreateUserCommand(), newResetPasswordCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newImportCommand() *cobra.Command {
	var email, file string
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Import a csv or xlsx sales file for a user",
		Example: "  $ salesboard import --email owner@example.com --file sales.xlsx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDatabase()
			if err != nil {
				return err
			}
			_, err = cli.ImportSales(database, cmd.OutOrStdout(), email, file, mustLoadLocation(flagTimezone))
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email or username of the owner")
	cmd.Flags().StringVar(&file, "file", "", "csv or xlsx file to import")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCreateUserCommand() *cobra.Command {
	var email, username string
	var prompt bool
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account; the first one becomes admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if prompt {
				value, err := cli.PromptPassword(cmd.OutOrStdout(), os.Stdin, "Password: ")
				if err != nil {
					return err
				}
				password = value
			}
			database, err := openDatabase()
			if err != nil {
				return err
			}
			_, err = cli.CreateUser(database, cmd.OutOrStdout(), username, email, password)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().BoolVar(&prompt, "password-prompt", false, "read the password from the terminal instead of generating one")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newResetPasswordCommand() *cobra.Command {
	var login string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password with a temporary one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDatabase()
			if err != nil {
				return err
			}
			_, err = cli.ResetPassword(database, cmd.OutOrStdout(), login)
			return err
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "email or username")
	_ = cmd.MarkFlagRequired("login")
	return cmd
}

func openDatabase() (*gorm.DB, error) {
	database, err := db.OpenSQLite(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func runServer() error {
	location := mustLoadLocation(flagTimezone)
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	port, err := resolvePort()
	if err != nil {
		return err
	}
	cookieSecure := parseBoolEnv("COOKIE_SECURE", false)
	defaultLanguage := getEnv("DEFAULT_LANGUAGE", "ar")

	database, err := openDatabase()
	if err != nil {
		return err
	}

	i18nManager, err := i18n.NewManager(defaultLanguage, filepath.Join("internal", "i18n", "locales"))
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, secretKey, filepath.Join("internal", "templates"), location, i18nManager, cookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	uploadLimit := resolveUploadLimit() << 20
	handler.SetUploadLimit(uploadLimit)

	app := fiber.New(fiber.Config{
		AppName:               "Sales Board",
		DisableStartupMessage: true,
		BodyLimit:             int(uploadLimit) + 1<<20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	app.Static("/static", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	refresher := services.NewRefreshService(services.DefaultAutoRefreshInterval, handler.RefreshAnalyses)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	refresher.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Sales Board listening on http://0.0.0.0:%s (db: %s, tz: %s, refresh: %s)", port, flagDBPath, location.String(), refresher.Interval())
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "salesboard_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		// JSON bodies cannot be posted cross-site without a preflight.
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
		},
	}
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == insecureSecretDefault || secret == exampleSecretValue:
		return "", errors.New("SECRET_KEY uses a placeholder value")
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveUploadLimit() int64 {
	raw := getEnv("UPLOAD_LIMIT_MB", strconv.Itoa(defaultUploadLimitMB))
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		log.Printf("invalid UPLOAD_LIMIT_MB %q, using %d", raw, defaultUploadLimitMB)
		return defaultUploadLimitMB
	}
	return limit
}

func parseBoolEnv(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
