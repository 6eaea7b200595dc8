package main

import (
	"flag"
	"log"
	"os"
	"time"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/db"
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
)

func main() {
	days := flag.Int("days", 30, "export leads recorded in the last N days")
	status := flag.String("status", "", "only export this status (sent or failed)")
	out := flag.String("out", "leads.xlsx", "output workbook path")
	flag.Parse()

	cfg := config.Load()
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.LeadRecord{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	since := time.Now().UTC().AddDate(0, 0, -*days)
	records, err := services.ListLeadRecords(db.DB, since, *status)
	if err != nil {
		log.Fatalf("Failed to load lead records: %v", err)
	}

	buf, err := services.ExportLeadRecords(records)
	if err != nil {
		log.Fatalf("Failed to build workbook: %v", err)
	}

	if err := os.WriteFile(*out, buf.Bytes(), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Exported %d lead records since %s to %s", len(records), since.Format("2006-01-02"), *out)
}
