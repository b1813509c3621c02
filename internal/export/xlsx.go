// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package export produces spreadsheet exports of the property registry
// for back-office use.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"property-scan/internal/registry"
)

// Service produces XLSX bytes from a registry snapshot.
type Service struct {
	fields []string
	logger *slog.Logger
}

// NewService creates an export service over the canonical field catalog.
func NewService(fields []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fields: fields, logger: logger}
}

// ExportXLSX returns an XLSX workbook with one row per property, columns
// in catalog order. Column order is part of the record shape contract.
func (s *Service) ExportXLSX(reg *registry.Registry) ([]byte, error) {
	start := time.Now()
	keys, records := reg.Snapshot()

	f := excelize.NewFile()
	const sheet = "Properties"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	// Drop the default sheet excelize creates.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := append([]string{"Key"}, s.fields...)
	headers = append(headers, "Source File", "Raw Text Preview")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, key := range keys {
		rec, ok := records[key]
		if !ok {
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, key)
		for i, field := range s.fields {
			write(i+2, rec.Fields[field])
		}
		write(len(s.fields)+2, rec.SourceFile)
		write(len(s.fields)+3, rec.RawTextPreview)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("registry exported",
		"session_id", reg.SessionID,
		"properties", len(keys),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
