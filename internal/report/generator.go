// Package report renders summaries, series and category breakdowns for output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/spend-rollup/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator encodes rollup results in the configured formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport encodes v in the specified format (json or yaml).
func (g *ReportGenerator) GenerateReport(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSONReport(v)
	case FormatYAML:
		return g.generateYAMLReport(v)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport encodes v and writes it to w followed by a newline.
func (g *ReportGenerator) WriteReport(w io.Writer, v interface{}, format string) error {
	out, err := g.GenerateReport(v, format)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

func (g *ReportGenerator) generateJSONReport(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return buf.Bytes(), nil
}
