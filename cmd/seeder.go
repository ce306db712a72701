package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with departments and users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		if clearData {
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			if err := db.Exec("DELETE FROM departments").Error; err != nil {
				log.Fatalf("failed to clear departments: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		var departmentCount int64
		row := db.Raw("SELECT COUNT(*) FROM departments").Row()
		if err := row.Scan(&departmentCount); err != nil {
			log.Fatalf("failed to count departments: %v", err)
		}
		if departmentCount > 0 {
			fmt.Println("departments already present; skipping seed")
			return
		}

		departments := []string{"-", "Software Development", "Sales"}
		for _, name := range departments {
			if err := db.Exec("INSERT INTO departments (name) VALUES (?)", name).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", name, err)
			}
		}
		fmt.Println("Seeded departments")

		users := []struct {
			FirstName    string
			LastName     string
			Email        string
			JobTitle     string
			Salary       float64
			Role         string
			Password     string
			DepartmentID int64
		}{
			{"AdminName", "AdminFamily", "admin@hcm.com", "Admin", 10000, "admin", "Admin@123", 1},
			{"Mariya", "Georgieva", "manager@hcm.com", "Manager", 5000, "manager", "Manager@123", 2},
			{"Donka", "Koeva", "dk@hcm.com", "Manager assistant", 2600, "manager", "Dkman123?", 3},
			{"Ivan", "Petrov", "ivan@hcm.com", "Developer", 3000, "employee", "Ivan123?", 2},
			{"Petko", "Asenov", "pa@hcm.com", "Employee 1", 3000, "employee", "Pa123?", 2},
			{"Grigor", "Tinev", "gt@hcm.com", "Employee 2", 3100, "employee", "Gt123?", 3},
			{"Petra", "Rosenova", "pr@hcm.com", "Employee 3", 3200, "employee", "Pr123?", 3},
			{"Yavor", "Emilov", "ye@hcm.com", "Employee 4", 3300, "employee", "Ye123?", 3},
		}

		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", u.Email, err)
			}

			err = db.Exec(
				"INSERT INTO users (first_name, last_name, email, job_title, salary, role, password_hash, department_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				u.FirstName, u.LastName, u.Email, u.JobTitle, u.Salary, u.Role, string(hash), u.DepartmentID,
			).Error
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}
	},
}
