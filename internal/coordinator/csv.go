package coordinator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"merchantdesk/internal/overlay"
	"merchantdesk/internal/view"

	"go.uber.org/zap"
)

// csvHeader is the column layout shared by export and import
var csvHeader = []string{"ID", "Merchant Name", "Country", "Category", "Status", "Favorite"}

// Export writes the given view rows as CSV. It fails when the remote
// snapshot is empty; exporting nothing is treated as a user error, not an
// empty file.
func (c *Coordinator) Export(w io.Writer, rows []view.Row) error {
	if len(c.merchants) == 0 {
		return &ValidationError{Message: "No data to export"}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		favorite := "No"
		if row.Favorite {
			favorite = "Yes"
		}
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.MerchantName,
			row.Country,
			string(row.Category),
			string(row.Status),
			favorite,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	c.appendActivity(overlay.ActivityExport,
		fmt.Sprintf("Exported %d merchants to CSV", len(rows)))
	c.log.Info("Merchants exported", zap.Int("count", len(rows)))
	c.setNotice("Data exported to CSV!")
	return nil
}

// Import reads CSV rows of name/country/category/status, skipping the
// header. Every row with a name and a country becomes a remote create
// followed by an overlay write for the returned ID. Rows that fail to parse
// or lack the required fields are skipped without being counted or
// reported; only the aggregate import count comes back. A remote failure
// aborts the run, leaving earlier creates committed.
func (c *Coordinator) Import(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	imported := 0
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it and keep going.
			continue
		}
		if first {
			first = false
			continue
		}
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		country := strings.TrimSpace(record[1])
		if name == "" || country == "" {
			continue
		}

		entry := overlay.DefaultEntry()
		if len(record) > 2 {
			if cat, ok := overlay.ParseCategory(strings.TrimSpace(record[2])); ok {
				entry.Category = cat
			}
		}
		if len(record) > 3 {
			if st, ok := overlay.ParseStatus(strings.TrimSpace(record[3])); ok {
				entry.Status = st
			}
		}

		merchant, err := c.remote.Create(name, country)
		if err != nil {
			c.log.Error("Import aborted",
				zap.String("merchant_name", name),
				zap.Int("imported", imported),
				zap.Error(err))
			if _, rerr := c.Refresh(); rerr != nil {
				c.log.Error("Failed to refresh after aborted import", zap.Error(rerr))
			}
			return imported, err
		}
		c.overlay.Set(merchant.ID, entry)
		imported++
	}

	if imported > 0 {
		c.appendActivity(overlay.ActivityCreate,
			fmt.Sprintf("Imported %d merchants", imported))
	}
	c.log.Info("Import finished", zap.Int("imported", imported))

	if _, err := c.Refresh(); err != nil {
		return imported, err
	}
	c.setNotice(fmt.Sprintf("Imported %d merchants!", imported))
	return imported, nil
}
