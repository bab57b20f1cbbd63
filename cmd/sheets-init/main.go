package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	gsheet "google.golang.org/api/sheets/v4"

	"bizdash/internal/records"
	"bizdash/internal/sheets"
	"bizdash/internal/sheets/google"
)

// sheets-init provisions the spreadsheet: it creates the missing tabs and
// writes the header row of each one. Safe to re-run; existing tabs are
// left alone apart from row 1.
func main() {
	_ = godotenv.Load()

	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		log.Fatalf("set GOOGLE_SPREADSHEET_ID")
	}

	ctx := context.Background()
	svc, err := google.NewService(ctx)
	if err != nil {
		log.Fatalf("sheets service: %v", err)
	}

	doc, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		log.Fatalf("load spreadsheet: %v", err)
	}
	fmt.Printf("Connected to spreadsheet: %s\n", doc.Properties.Title)

	existing := make(map[string]bool, len(doc.Sheets))
	for _, sh := range doc.Sheets {
		existing[sh.Properties.Title] = true
	}

	rangeIDs := []string{
		sheets.RangeClients,
		sheets.RangeProjects,
		sheets.RangeIncome,
		sheets.RangeExpenses,
		sheets.RangeUsers,
	}

	var requests []*gsheet.Request
	for _, rangeID := range rangeIDs {
		tab := tabName(rangeID)
		if existing[tab] {
			continue
		}
		requests = append(requests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		})
		fmt.Printf("Creating tab: %s\n", tab)
	}

	if len(requests) > 0 {
		_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			log.Fatalf("create tabs: %v", err)
		}
	}

	for _, rangeID := range rangeIDs {
		tab := tabName(rangeID)
		header, ok := records.Headers[rangeID]
		if !ok {
			log.Fatalf("no header row defined for %s", rangeID)
		}
		vr := &gsheet.ValueRange{Values: [][]any{header}}
		_, err = svc.Spreadsheets.Values.Update(spreadsheetID, tab+"!A1", vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if err != nil {
			log.Fatalf("write header for %s: %v", tab, err)
		}
		fmt.Printf("Set up headers for: %s\n", tab)
	}

	fmt.Println("Spreadsheet setup completed successfully")
}

func tabName(rangeID string) string {
	if i := strings.Index(rangeID, "!"); i >= 0 {
		return rangeID[:i]
	}
	return rangeID
}
