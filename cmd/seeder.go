package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"payments", "loan_applications", "loans", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"admin@loanlink.dev", "Site Admin", userDatamodel.RoleAdmin},
			{"manager@loanlink.dev", "Loan Manager", userDatamodel.RoleManager},
			{"borrower@loanlink.dev", "Sample Borrower", userDatamodel.RoleBorrower},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (id, email, name, role, status, created_at, last_logged_in) VALUES (?, ?, ?, ?, ?, now(), now())",
				uuid.NewString(), u.Email, u.Name, u.Role, userDatamodel.StatusActive,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		loans := []struct {
			Title        string
			Description  string
			Category     string
			LoanAmount   string
			InterestRate float64
		}{
			{"Small Business Expansion", "Working capital for a neighborhood bakery", "business", "15000.00", 7.5},
			{"Home Solar Installation", "Rooftop solar panels and inverter", "home-improvement", "8000.00", 5.25},
			{"Vocational Training", "Twelve-week welding certification course", "education", "3500.00", 4.0},
		}

		for _, l := range loans {
			var exists int
			row := db.Raw("SELECT 1 FROM loans WHERE title = ?", l.Title).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO loans (id, title, description, category, loan_amount, interest_rate, created_by_email, created_by_name, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now())",
				uuid.NewString(), l.Title, l.Description, l.Category, l.LoanAmount, l.InterestRate,
				"manager@loanlink.dev", "Loan Manager",
			).Error; err != nil {
				log.Fatalf("failed to insert loan %s: %v", l.Title, err)
			}
			fmt.Printf("Seeded loan: %s\n", l.Title)
		}

		fmt.Println("Seeding finished")
	},
}
