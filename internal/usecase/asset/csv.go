package asset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	domainAsset "asset-verification-portal/internal/domain/asset"
	appErrors "asset-verification-portal/pkg/errors"
)

// Column synonyms accepted in import headers, all matched case-insensitively
// after trimming. Inventory exports from vendors rarely agree on naming.
var csvColumnSynonyms = map[string]string{
	"service tag":      "service_tag",
	"servicetag":       "service_tag",
	"serial number":    "service_tag",
	"serial":           "service_tag",
	"asset type":       "asset_type",
	"type":             "asset_type",
	"model":            "model",
	"assigned to":      "assigned_to",
	"employee id":      "assigned_to",
	"assigned to name": "assigned_to_name",
	"employee name":    "assigned_to_name",
	"cost":             "cost",
	"price":            "cost",
	"value":            "cost",
	"purchase date":    "purchase_date",
	"invoice number":   "invoice_number",
	"invoice":          "invoice_number",
	"po number":        "po_number",
	"po":               "po_number",
	"location":         "location",
	"team":             "team",
	"department":       "team",
}

var csvDateFormats = []string{"2006-01-02", "01/02/2006", "2006/01/02", time.RFC3339}

// ImportCSV parses an inventory CSV and upserts its rows by service tag.
// Rows without a recognizable assigned-to value import as Instock.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.NewValidationError("CSV file is empty or unreadable", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := csvColumnSynonyms[key]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}

	if _, ok := columns["service_tag"]; !ok {
		return nil, appErrors.NewValidationError("CSV is missing a service tag column", nil)
	}
	if _, ok := columns["asset_type"]; !ok {
		return nil, appErrors.NewValidationError("CSV is missing an asset type column", nil)
	}

	bulkReq := &BulkImportRequest{}
	var parseErrors []string
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		rowReq, err := rowToCreateRequest(row, columns)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		bulkReq.Assets = append(bulkReq.Assets, *rowReq)
	}

	if len(bulkReq.Assets) == 0 {
		result := &ImportResult{Errors: parseErrors}
		if len(parseErrors) == 0 {
			return nil, appErrors.NewValidationError("CSV contains no data rows", nil)
		}
		return result, nil
	}

	result, err := s.BulkImport(ctx, bulkReq)
	if err != nil {
		return nil, err
	}

	result.Errors = append(parseErrors, result.Errors...)
	result.Total += len(parseErrors)
	return result, nil
}

func rowToCreateRequest(row []string, columns map[string]int) (*CreateAssetRequest, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	serviceTag := cell("service_tag")
	if serviceTag == "" {
		return nil, fmt.Errorf("missing service tag")
	}

	assetType, ok := domainAsset.ParseType(normalizeAssetType(cell("asset_type")))
	if !ok {
		return nil, fmt.Errorf("unknown asset type %q", cell("asset_type"))
	}

	req := &CreateAssetRequest{
		ServiceTag: serviceTag,
		AssetType:  string(assetType),
		Model:      cell("model"),
		Location:   cell("location"),
		Team:       cell("team"),
	}

	if v := cell("cost"); v != "" {
		cost, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("bad cost %q", v)
		}
		req.Cost = cost
	}

	if v := cell("purchase_date"); v != "" {
		if t, err := parseCSVDate(v); err == nil {
			req.PurchaseDate = &t
		}
	}

	if v := cell("invoice_number"); v != "" {
		req.InvoiceNumber = &v
	}
	if v := cell("po_number"); v != "" {
		req.PONumber = &v
	}

	if v := cell("assigned_to"); v != "" {
		req.AssignedTo = &v
		if name := cell("assigned_to_name"); name != "" {
			req.AssignedToName = &name
		} else {
			req.AssignedToName = &v
		}
	}

	return req, nil
}

func normalizeAssetType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "laptop", "notebook":
		return string(domainAsset.TypeLaptop)
	case "monitor", "display":
		return string(domainAsset.TypeMonitor)
	case "mobile", "phone", "smartphone":
		return string(domainAsset.TypeMobile)
	}
	return strings.TrimSpace(raw)
}

func parseCSVDate(v string) (time.Time, error) {
	for _, layout := range csvDateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// ExportCSV writes the full asset registry as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	filter := &domainAsset.Filter{Page: 1, PageSize: 10000, SortBy: "service_tag", SortOrder: "asc"}
	assets, _, err := s.assetRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"Service Tag", "Asset Type", "Model", "Status", "Verification Status",
		"Last Verified", "Assigned To", "Assigned To Name", "Cost", "Purchase Date", "Location", "Team",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range assets {
		row := []string{
			a.ServiceTag,
			string(a.AssetType),
			a.Model,
			string(a.Status),
			string(a.VerificationStatus),
			dateOrEmpty(a.LastVerifiedDate),
			stringOrEmpty(a.AssignedTo),
			stringOrEmpty(a.AssignedToName),
			strconv.FormatFloat(a.Cost, 'f', 2, 64),
			dateOrEmpty(a.PurchaseDate),
			a.Location,
			a.Team,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
