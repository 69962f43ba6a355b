package loader

import (
	"strings"

	"schema-typer/internal/schema"
)

// xsdBuiltins maps lower-cased XSD builtin type names onto schema tags.
var xsdBuiltins = map[string]string{
	"string":           schema.TagString,
	"normalizedstring": schema.TagString,
	"token":            schema.TagString,
	"language":         schema.TagString,
	"name":             schema.TagString,
	"ncname":           schema.TagString,
	"nmtoken":          schema.TagString,
	"nmtokens":         schema.TagString,
	"id":               schema.TagString,
	"idref":            schema.TagString,
	"idrefs":           schema.TagString,
	"entity":           schema.TagString,
	"entities":         schema.TagString,
	"anyuri":           schema.TagString,
	"qname":            schema.TagString,
	"notation":         schema.TagString,
	"anysimpletype":    schema.TagString,
	"gyearmonth":       schema.TagString,
	"gyear":            schema.TagString,
	"gmonthday":        schema.TagString,
	"gday":             schema.TagString,
	"gmonth":           schema.TagString,

	"boolean": schema.TagBoolean,

	"integer":            schema.TagInteger,
	"int":                schema.TagInteger,
	"positiveinteger":    schema.TagInteger,
	"negativeinteger":    schema.TagInteger,
	"nonnegativeinteger": schema.TagInteger,
	"nonpositiveinteger": schema.TagInteger,

	"long":         schema.TagLong,
	"unsignedlong": schema.TagLong,
	"unsignedint":  schema.TagLong,

	"short":         schema.TagShort,
	"unsignedshort": schema.TagShort,
	"byte":          schema.TagShort,
	"unsignedbyte":  schema.TagShort,

	"float":    schema.TagFloat,
	"double":   schema.TagDouble,
	"decimal":  schema.TagDecimal,
	"datetime": schema.TagDatetime,
	"date":     schema.TagDate,
	"time":     schema.TagTime,
	"duration": schema.TagTimespan,

	"hexbinary":    schema.TagBytes,
	"base64binary": schema.TagBytes,
}

// builtinTag looks up an XSD builtin by its local name.
func builtinTag(local string) (string, bool) {
	tag, ok := xsdBuiltins[strings.ToLower(local)]
	return tag, ok
}

// splitQName splits "xs:string" into "xs" and "string".
func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}

	return "", qname
}
