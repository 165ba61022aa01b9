package service

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
	ReportFormatYAML ReportFormat = "yaml"
)

var ErrUnknownFormat = fmt.Errorf("%w: unknown report format", domain.ErrInvalidArgument)

// WriteReport renders levels to w. The text form is the classic
// "Items Report" listing with one "item -> qty" line per entry.
func WriteReport(w io.Writer, levels []domain.StockLevel, format ReportFormat) error {
	switch format {
	case ReportFormatText, "":
		if _, err := fmt.Fprintln(w, "Items Report"); err != nil {
			return err
		}
		for _, l := range levels {
			if _, err := fmt.Fprintf(w, "%s -> %d\n", l.Item, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	case ReportFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(levels)
	case ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(levels); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
