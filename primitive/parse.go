package primitive

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrParse is wrapped by every error ParseText returns.
var ErrParse = errors.New("malformed text")

// timeLayouts are tried in order before falling back to cast's format list.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"15:04:05.999999999Z07:00",
	"15:04:05.999999999",
}

var (
	isoDuration   = regexp.MustCompile(`^(-)?P(?:(\d+(?:\.\d+)?)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
	clockDuration = regexp.MustCompile(`^(-)?(?:(\d+)\.)?(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?$`)
)

// ParseText parses text using the canonical grammar of kind. Empty text is
// absent and yields (nil, nil) without a parse attempt. KindString,
// KindPrimitiveEnum and KindAny return the text unchanged.
func ParseText(kind KindEnum, text string) (any, error) {
	if text == "" {
		return nil, nil
	}

	v, err := parseText(kind, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %w", ErrParse, text, kind, err)
	}

	return v, nil
}

func parseText(kind KindEnum, text string) (any, error) {
	trimmed := strings.TrimSpace(text)

	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(trimmed, 10, kind.Bits())
		if err != nil {
			return nil, err
		}
		return fromInt64(n, kind), nil

	case kind.IsUnsigned():
		n, err := strconv.ParseUint(trimmed, 10, kind.Bits())
		if err != nil {
			return nil, err
		}
		return fromUint64(n, kind), nil

	case kind.IsFloat():
		f, err := strconv.ParseFloat(trimmed, kind.Bits())
		if err != nil {
			return nil, err
		}
		v, _ := fromFloat64(f, kind)
		return v, nil
	}

	switch kind {
	case KindDecimal:
		return decimal.NewFromString(trimmed)
	case KindBool:
		return parseBool(trimmed)
	case KindTime:
		return parseTime(trimmed)
	case KindDuration:
		return ParseDuration(trimmed)
	case KindUUID:
		return uuid.Parse(trimmed)
	case KindBytes:
		return parseBytes(trimmed)
	case KindString, KindPrimitiveEnum, KindAny:
		return text, nil
	default:
		return nil, fmt.Errorf("kind %s has no textual grammar", kind)
	}
}

// parseBool accepts the textual bool forms: yes/no, on/off and everything
// strconv.ParseBool understands.
func parseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}

	return cast.ToBoolE(text)
}

func parseTime(text string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	return cast.ToTimeE(text)
}

// ParseDuration understands ISO-8601 durations limited to days and smaller
// units (P1DT2H3M4.5S), clock notation ([d.]hh:mm[:ss[.fffffffff]]) and Go
// duration syntax (1h30m).
func ParseDuration(text string) (time.Duration, error) {
	if m := isoDuration.FindStringSubmatch(text); m != nil && text != "P" && !strings.HasSuffix(text, "T") {
		var total float64
		units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
		for i, unit := range units {
			if m[i+2] == "" {
				continue
			}
			f, err := strconv.ParseFloat(m[i+2], 64)
			if err != nil {
				return 0, err
			}
			total += f * float64(unit)
		}
		if m[1] == "-" {
			total = -total
		}
		return time.Duration(total), nil
	}

	if m := clockDuration.FindStringSubmatch(text); m != nil {
		var d time.Duration
		if m[2] != "" {
			days, _ := strconv.Atoi(m[2])
			d += time.Duration(days) * 24 * time.Hour
		}
		hours, _ := strconv.Atoi(m[3])
		minutes, _ := strconv.Atoi(m[4])
		d += time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
		if m[5] != "" {
			seconds, _ := strconv.Atoi(m[5])
			d += time.Duration(seconds) * time.Second
		}
		if m[6] != "" {
			frac := m[6] + strings.Repeat("0", 9-len(m[6]))
			nanos, _ := strconv.Atoi(frac)
			d += time.Duration(nanos)
		}
		if m[1] == "-" {
			d = -d
		}
		return d, nil
	}

	return cast.ToDurationE(text)
}

func parseBytes(text string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(text); err == nil {
		return b, nil
	}

	return hex.DecodeString(text)
}

// FormatText renders a value in its canonical textual representation.
func FormatText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case time.Duration:
		return t.String()
	case uuid.UUID:
		return t.String()
	case decimal.Decimal:
		return t.String()
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	}

	if s, err := cast.ToStringE(v); err == nil {
		return s
	}

	return fmt.Sprint(v)
}
