package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Muted console palette, easy on the eyes during long batch runs.
const (
	colorFg     = "\x1b[38;5;223m" // soft cream
	colorAqua   = "\x1b[38;5;108m" // muted cyan-green, timestamps
	colorOrange = "\x1b[38;5;208m" // component names
	colorYellow = "\x1b[38;5;214m" // warnings
	colorGreen  = "\x1b[38;5;142m" // counters
	colorBlue   = "\x1b[38;5;109m" // identifiers
	colorRed    = "\x1b[38;5;167m" // errors
	colorRedBg  = "\x1b[48;5;88m"
	colorYelBg  = "\x1b[48;5;58m"
)

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  inject  Tag complete  Notary act (4 phrases)"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	// Base JSON encoder only serves field serialization internally
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	// Time
	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel && ent.Level != zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorOrange)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	// Message
	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	// Fields: extract and color values
	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(extractFieldValues(fields))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYelBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: inject -> inject, inject.sentences -> i.sentences
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	switch field.Type {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		if field.Integer == 1 {
			return "true"
		}
		return "false"
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}

	return ""
}

// extractFieldValues pulls just the values from structured fields.
// Identifying keys (tag, role, person, reference) render blue; counters green.
// Input: {"tag": "Notary act", "phrases": 4}
// Output: "Notary act (4 phrases)"
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		val := getFieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case "tag", "role", "person", "reference", "event", "run_id":
			values = append(values, colorBlue+val+colorReset)
		case "phrases", "roles", "rows", "added", "skipped", "errored", "remaining":
			values = append(values, colorFg+"("+colorGreen+val+colorReset+colorFg+" "+field.Key+")"+colorReset)
		case "error", "reason":
			values = append(values, colorRed+val+colorReset)
		default:
			values = append(values, colorFg+field.Key+"="+val+colorReset)
		}
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}
