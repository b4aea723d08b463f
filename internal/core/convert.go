package core

// convert.go converts raw file values to PostgreSQL wire types.
//
// All ToPg* functions return pgtype values with Valid=false for empty
// input, so missing fields arrive as NULL. Parse failures on typed
// columns are errors: a bad value aborts the chunk rather than being
// silently nullified.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ToPgText converts a string to pgtype.Text. Empty or whitespace-only
// input becomes NULL. Invalid UTF-8 bytes are replaced so the server
// never rejects a row over encoding.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: strings.ToValidUTF8(s, "�"), Valid: true}
}

// ToPgInt8 converts a string to pgtype.Int8.
func ToPgInt8(s string) (pgtype.Int8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int8{}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return pgtype.Int8{}, fmt.Errorf("invalid integer %q", s)
	}
	return pgtype.Int8{Int64: n, Valid: true}, nil
}

// ToPgFloat8 converts a string to pgtype.Float8.
func ToPgFloat8(s string) (pgtype.Float8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Float8{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{}, fmt.Errorf("invalid number %q", s)
	}
	return pgtype.Float8{Float64: f, Valid: true}, nil
}

// convertField converts a raw value according to the column's FieldType.
func convertField(v string, t FieldType) (any, error) {
	switch t {
	case FieldInt:
		return ToPgInt8(v)
	case FieldNumeric:
		return ToPgFloat8(v)
	default:
		return ToPgText(v), nil
	}
}
