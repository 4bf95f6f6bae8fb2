package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "salesboard-cli-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func TestCreateUserGeneratesPasswordWhenEmpty(t *testing.T) {
	database := openTestDatabase(t)

	var out bytes.Buffer
	user, err := CreateUser(database, &out, "founder", "Founder@Example.com", "")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("expected first account to be admin, got %q", user.Role)
	}
	if user.Email != "founder@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !strings.Contains(out.String(), "Temporary password: ") {
		t.Fatalf("expected generated password in output, got %q", out.String())
	}

	second, err := CreateUser(database, io.Discard, "cashier", "cashier@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("CreateUser second account: %v", err)
	}
	if second.Role != models.RoleUser {
		t.Fatalf("expected second account to be a user, got %q", second.Role)
	}
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	database := openTestDatabase(t)

	if _, err := CreateUser(database, io.Discard, "ab", "short@example.com", "StrongPass1"); err == nil {
		t.Fatal("expected error for short username")
	}
	if _, err := CreateUser(database, io.Discard, "valid", "not-an-email", "StrongPass1"); err == nil {
		t.Fatal("expected error for invalid email")
	}
}

func TestImportSalesStoresRowsAndSnapshot(t *testing.T) {
	database := openTestDatabase(t)
	user, err := CreateUser(database, io.Discard, "owner", "owner@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	filePath := filepath.Join(t.TempDir(), "sales.csv")
	content := "product_name,quantity,price,sale_date\nCoffee,2,10,2026-01-05\nTea,1,5,2026-01-06\n"
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	var out bytes.Buffer
	summary, err := ImportSales(database, &out, "OWNER@example.com", filePath, time.UTC)
	if err != nil {
		t.Fatalf("ImportSales returned error: %v", err)
	}
	if summary.TotalRows != 2 || summary.TotalSales != 25 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !strings.Contains(out.String(), "Imported 2 rows") {
		t.Fatalf("unexpected output %q", out.String())
	}

	repositories := db.NewRepositories(database)
	sales, err := repositories.Sales.ListByUser(user.ID)
	if err != nil || len(sales) != 2 {
		t.Fatalf("expected 2 stored sales, got %d (err=%v)", len(sales), err)
	}
	if _, found, err := repositories.Analyses.LatestByUser(user.ID); err != nil || !found {
		t.Fatalf("expected analysis snapshot, found=%v err=%v", found, err)
	}
}

func TestImportSalesRequiresKnownUserAndFile(t *testing.T) {
	database := openTestDatabase(t)

	if _, err := ImportSales(database, io.Discard, "owner@example.com", "", time.UTC); err == nil {
		t.Fatal("expected error without a file")
	}
	if _, err := ImportSales(database, io.Discard, "ghost@example.com", "sales.csv", time.UTC); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
