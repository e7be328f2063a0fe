package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"attendance-tracker-backend/internal/auth"
	"attendance-tracker-backend/internal/config"
	"attendance-tracker-backend/internal/database"
	"attendance-tracker-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

type EmployeeData struct {
	OrganizationName string `yaml:"organization_name"`
	Name             string `yaml:"name"`
	Email            string `yaml:"email"`
	Department       string `yaml:"department,omitempty"`
}

type ProfileData struct {
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`
	Role             string `yaml:"role"`
	OrganizationName string `yaml:"organization_name,omitempty"`
	EmployeeEmail    string `yaml:"employee_email,omitempty"`
}

// File structures
type OrganizationsFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
}

type EmployeesFile struct {
	Employees []EmployeeData `yaml:"employees"`
}

type ProfilesFile struct {
	Profiles []ProfileData `yaml:"profiles"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var orgsFile OrganizationsFile
	if err := readYAML(filepath.Join(dataDir, "organizations.yaml"), &orgsFile); err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}

	var employeesFile EmployeesFile
	if err := readYAML(filepath.Join(dataDir, "employees.yaml"), &employeesFile); err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}

	var profilesFile ProfilesFile
	if err := readYAML(filepath.Join(dataDir, "profiles.yaml"), &profilesFile); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	orgsByName := make(map[string]*models.Organization)
	for _, data := range orgsFile.Organizations {
		org, err := upsertOrganization(db, data)
		if err != nil {
			return fmt.Errorf("organization %q: %w", data.Name, err)
		}
		orgsByName[data.Name] = org
	}
	log.Printf("Loaded %d organizations", len(orgsByName))

	employeesByEmail := make(map[string]*models.Employee)
	for _, data := range employeesFile.Employees {
		org, ok := orgsByName[data.OrganizationName]
		if !ok {
			return fmt.Errorf("employee %q references unknown organization %q", data.Email, data.OrganizationName)
		}
		employee, err := upsertEmployee(db, org, data)
		if err != nil {
			return fmt.Errorf("employee %q: %w", data.Email, err)
		}
		employeesByEmail[data.Email] = employee
	}
	log.Printf("Loaded %d employees", len(employeesByEmail))

	for _, data := range profilesFile.Profiles {
		if err := upsertProfile(db, orgsByName, employeesByEmail, data); err != nil {
			return fmt.Errorf("profile %q: %w", data.Email, err)
		}
	}
	log.Printf("Loaded %d profiles", len(profilesFile.Profiles))

	return nil
}

func readYAML(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, out)
}

func upsertOrganization(db *gorm.DB, data OrganizationData) (*models.Organization, error) {
	var org models.Organization
	err := db.Where("name = ?", data.Name).First(&org).Error
	switch {
	case err == nil:
		org.Location = data.Location
		return &org, db.Save(&org).Error
	case err == gorm.ErrRecordNotFound:
		org = models.Organization{Name: data.Name, Location: data.Location}
		return &org, db.Create(&org).Error
	default:
		return nil, err
	}
}

func upsertEmployee(db *gorm.DB, org *models.Organization, data EmployeeData) (*models.Employee, error) {
	var employee models.Employee
	err := db.Where("email = ?", data.Email).First(&employee).Error
	switch {
	case err == nil:
		employee.Name = data.Name
		employee.Department = data.Department
		return &employee, db.Save(&employee).Error
	case err == gorm.ErrRecordNotFound:
		employee = models.Employee{
			OrganizationID: org.ID,
			Name:           data.Name,
			Email:          data.Email,
			Department:     data.Department,
		}
		return &employee, db.Create(&employee).Error
	default:
		return nil, err
	}
}

func upsertProfile(db *gorm.DB, orgs map[string]*models.Organization, employees map[string]*models.Employee, data ProfileData) error {
	role := models.Role(data.Role)
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", data.Role)
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return err
	}

	profile := models.Profile{
		Email:        data.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if data.OrganizationName != "" {
		org, ok := orgs[data.OrganizationName]
		if !ok {
			return fmt.Errorf("unknown organization %q", data.OrganizationName)
		}
		profile.OrganizationID = &org.ID
	}
	if data.EmployeeEmail != "" {
		employee, ok := employees[data.EmployeeEmail]
		if !ok {
			return fmt.Errorf("unknown employee %q", data.EmployeeEmail)
		}
		profile.EmployeeID = &employee.ID
		orgID := employee.OrganizationID
		profile.OrganizationID = &orgID
	}

	var existing models.Profile
	err = db.Where("email = ?", data.Email).First(&existing).Error
	switch {
	case err == nil:
		existing.PasswordHash = profile.PasswordHash
		existing.Role = profile.Role
		existing.OrganizationID = profile.OrganizationID
		existing.EmployeeID = profile.EmployeeID
		return db.Save(&existing).Error
	case err == gorm.ErrRecordNotFound:
		return db.Create(&profile).Error
	default:
		return err
	}
}
