package logs_core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

const emptyExport = "[]"

// ExportLogs returns every stored entry, newest first, as 2-space indented JSON.
func (s *LogStore) ExportLogs(ctx context.Context) Result[string] {
	return s.ExportLogsAs(ctx, ExportFormatJSON)
}

func (s *LogStore) ExportLogsAs(ctx context.Context, format ExportFormat) Result[string] {
	if format == "" {
		format = ExportFormatJSON
	}
	if !format.IsValid() {
		return failedResult(emptyExport, fmt.Errorf("unsupported export format: %s", format))
	}

	logsResult := s.GetLogs(ctx, LogFilter{Limit: s.stream.capacity})
	if logsResult.Err != nil {
		return failedResult(emptyExport, logsResult.Err)
	}

	text, err := encodeEntries(logsResult.Value, format)
	if err != nil {
		s.stream.logger.Error("failed to encode log export", "format", format, "error", err)
		return failedResult(emptyExport, err)
	}

	return okResult(text)
}

// ExportArchive returns the export compressed as a single zstd frame.
func (s *LogStore) ExportArchive(ctx context.Context, format ExportFormat) Result[[]byte] {
	exportResult := s.ExportLogsAs(ctx, format)

	archive, err := compressExport([]byte(exportResult.Value))
	if err != nil {
		s.stream.logger.Error("failed to compress log export", "error", err)
		return failedResult([]byte{}, err)
	}

	return Result[[]byte]{Value: archive, Err: exportResult.Err}
}

// ParseExport reads back the text produced by ExportLogsAs.
func ParseExport(text string, format ExportFormat) ([]*LogEntry, error) {
	entries := make([]*LogEntry, 0)

	switch format {
	case ExportFormatJSON, "":
		if err := json.Unmarshal([]byte(text), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse json export: %w", err)
		}
	case ExportFormatYAML:
		if err := yaml.Unmarshal([]byte(text), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse yaml export: %w", err)
		}
		// yaml decodes whole numbers as int, stored data holds JSON numbers
		for _, entry := range entries {
			data, err := normalizeYAMLData(entry.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse yaml export data: %w", err)
			}
			entry.Data = data
		}
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	return entries, nil
}

func normalizeYAMLData(data any) (any, error) {
	if data == nil {
		return nil, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}

func DecodeArchive(archive []byte) (string, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return "", err
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(archive, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decompress export: %w", err)
	}

	return string(raw), nil
}

func encodeEntries(entries []*LogEntry, format ExportFormat) (string, error) {
	switch format {
	case ExportFormatYAML:
		if len(entries) == 0 {
			return emptyExport + "\n", nil
		}

		var buffer bytes.Buffer
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return "", err
		}
		if err := encoder.Close(); err != nil {
			return "", err
		}
		return buffer.String(), nil
	default:
		raw, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

func compressExport(raw []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer func() { _ = encoder.Close() }()

	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}
