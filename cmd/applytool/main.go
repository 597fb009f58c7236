// Command applytool exports or imports one user's complete data set as a
// JSON file.
//
//	applytool export -user me@example.com [-file full_export.json]
//	applytool import -user me@example.com [-file full_export.json]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/config"
	"github.com/applytrack/applytrack/internal/database"
	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/transfer"
)

const defaultFilename = "full_export.json"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: applytool <export|import> -user <email> [-file <name>]")
}

func connect(email string) (*gorm.DB, *models.User, error) {
	cfg := config.Load()
	logrus.SetLevel(logrus.WarnLevel)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("no user with email %q", email)
		}
		return nil, nil, err
	}
	return db, &user, nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	email := fs.String("user", "", "email of the user whose data is exported")
	filename := fs.String("file", defaultFilename, "name of the JSON file to create")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-user is required")
	}

	db, user, err := connect(*email)
	if err != nil {
		return err
	}

	f, err := os.Create(*filename)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := transfer.Export(db, user.ID, f)
	if err != nil {
		return err
	}

	fmt.Println("Starting export process...")
	fmt.Printf("- %d companies found.\n", len(doc.Companies))
	fmt.Printf("- %d contacts found.\n", len(doc.Contacts))
	fmt.Printf("- %d applications found.\n", len(doc.Applications))
	fmt.Printf("- %d notes found.\n", len(doc.Notes))
	fmt.Printf("All data has been successfully exported to %q.\n", *filename)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	email := fs.String("user", "", "email of the user the data is imported for")
	filename := fs.String("file", defaultFilename, "name of the JSON file to import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-user is required")
	}

	db, user, err := connect(*email)
	if err != nil {
		return err
	}

	f, err := os.Open(*filename)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := transfer.Import(db, user.ID, f)
	if err != nil {
		return err
	}

	fmt.Printf("Companies:    %d created, %d updated\n", report.Companies.Created, report.Companies.Updated)
	fmt.Printf("Contacts:     %d created, %d updated\n", report.Contacts.Created, report.Contacts.Updated)
	fmt.Printf("Applications: %d created, %d updated\n", report.Applications.Created, report.Applications.Updated)
	fmt.Printf("Notes:        %d created, %d updated\n", report.Notes.Created, report.Notes.Updated)
	for _, line := range report.Skipped {
		fmt.Println("skipped:", line)
	}
	fmt.Println("Import process completed successfully.")
	return nil
}
