package primitive

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float, decimal without precision loss
	CategoryUnsafeNumber                          // int, uint, float, decimal with precision loss
	CategoryTextNumber                            // number <-> string: textual number representation
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string <-> time.Time: textual date and time representation
	CategoryDuration                              // string(PT2H45M, 02:45:00, 2h45m) <-> time.Duration
	CategoryIdentifier                            // string <-> uuid.UUID
	CategoryEnumString                            // string <-> enum: member name of a closed set
	CategoryBinary                                // string(base64, hex) <-> []byte

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

// categoryOrder lists categories from the most to the least specific, so
// Classify reports safe conversions before unsafe ones.
var categoryOrder = []CategoryEnum{
	CategorySafeNumber,
	CategoryUnsafeNumber,
	CategoryTextNumber,
	CategoryTextualBool,
	CategoryDatetime,
	CategoryDuration,
	CategoryIdentifier,
	CategoryEnumString,
	CategoryBinary,
}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategorySafeNumber] = safeNumberConversionPairs()

	// CategoryUnsafeNumber: unsafe number conversions
	conversionPairs[CategoryUnsafeNumber] = map[ConversionPair]struct{}{}
	for fromKind := KindEnum(0); int(fromKind) < KindTotal; fromKind++ {
		if !fromKind.IsNumber() {
			continue
		}

		for toKind := KindEnum(0); int(toKind) < KindTotal; toKind++ {
			if !toKind.IsNumber() {
				continue
			}

			pair := ConversionPair{fromKind, toKind}
			if _, ok := conversionPairs[CategorySafeNumber][pair]; ok {
				continue
			}

			conversionPairs[CategoryUnsafeNumber][pair] = struct{}{}
		}
	}

	// CategoryTextNumber: text <-> number conversions
	conversionPairs[CategoryTextNumber] = map[ConversionPair]struct{}{}
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsNumber() {
			continue
		}

		conversionPairs[CategoryTextNumber][ConversionPair{numberKind, KindString}] = struct{}{}
		conversionPairs[CategoryTextNumber][ConversionPair{KindString, numberKind}] = struct{}{}
	}

	conversionPairs[CategoryTextualBool] = map[ConversionPair]struct{}{
		{KindString, KindBool}: {},
		{KindBool, KindString}: {},
	}

	conversionPairs[CategoryDatetime] = map[ConversionPair]struct{}{
		{KindString, KindTime}: {},
		{KindTime, KindString}: {},
	}

	conversionPairs[CategoryDuration] = map[ConversionPair]struct{}{
		{KindString, KindDuration}: {},
		{KindDuration, KindString}: {},
	}

	conversionPairs[CategoryIdentifier] = map[ConversionPair]struct{}{
		{KindString, KindUUID}: {},
		{KindUUID, KindString}: {},
	}

	conversionPairs[CategoryEnumString] = map[ConversionPair]struct{}{
		{KindString, KindPrimitiveEnum}:        {},
		{KindPrimitiveEnum, KindString}:        {},
		{KindPrimitiveEnum, KindPrimitiveEnum}: {},
	}

	conversionPairs[CategoryBinary] = map[ConversionPair]struct{}{
		{KindString, KindBytes}: {},
		{KindBytes, KindString}: {},
	}
}

// Classify returns the category a primitive conversion belongs to, or
// CategoryNone when no category covers the pair.
func Classify(from, to KindEnum) CategoryEnum {
	pair := ConversionPair{from, to}
	for _, category := range categoryOrder {
		if _, ok := conversionPairs[category][pair]; ok {
			return category
		}
	}

	return CategoryNone
}

// Allowed reports whether the pair belongs to one of the allowed categories.
func Allowed(from, to KindEnum, allowed CategoryEnum) bool {
	category := Classify(from, to)
	return category != CategoryNone && allowed&category != 0
}

func (c CategoryEnum) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategorySafeNumber:
		return "safe_number"
	case CategoryUnsafeNumber:
		return "unsafe_number"
	case CategoryTextNumber:
		return "text_number"
	case CategoryTextualBool:
		return "textual_bool"
	case CategoryDatetime:
		return "datetime"
	case CategoryDuration:
		return "duration"
	case CategoryIdentifier:
		return "identifier"
	case CategoryEnumString:
		return "enum_string"
	case CategoryBinary:
		return "binary"
	case CategoryAll:
		return "all"
	default:
		return "mixed"
	}
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	pairs := map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt8}:    {},
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt16}:   {}, // int16 omitting narrowing to int8
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt32}:   {}, // int32 omitting narrowing to int8/16
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindInt64, KindInt64}: {}, // int64 is the widest signed integer type

		{KindUint, KindUint}:   {}, // uint can be any wide from 32 upto 64
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {}, // uint8 can be safely converted to any unsigned int
		{KindUint8, KindUint8}:   {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {}, // also uint8 can be converted to any wider signed int
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint16}:  {}, // uint16 omitting narrowing to uint8
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {}, // also uint16 can be converted to any wider signed int
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint32}:  {},
		{KindUint32, KindUint64}:  {}, // uint32 omitting narrowing to uint8/16
		{KindUint32, KindInt64}:   {}, // also only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {}, // uint32 is wider than float32 mantissa

		{KindUint64, KindUint64}: {}, // uint64 is the widest unsigned integer type

		{KindFloat32, KindFloat32}: {},
		{KindFloat32, KindFloat64}: {},

		{KindFloat64, KindFloat64}: {},

		{KindDecimal, KindDecimal}: {},
	}

	// every integer fits into an arbitrary precision decimal
	for kind := KindEnum(0); int(kind) < KindTotal; kind++ {
		if kind.IsInteger() {
			pairs[ConversionPair{kind, KindDecimal}] = struct{}{}
		}
	}

	return pairs
}
