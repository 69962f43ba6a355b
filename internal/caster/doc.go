// Package caster coerces dynamic values into synthesized types and
// materializes typed instances from runtime objects and XML elements.
//
// Coercion never fails for values of the wrong shape: they either convert
// or pass through unchanged. The only failure is text that does not parse
// as the target primitive, reported as a *CoercionError.
//
// Primitive values are carried in their Go representation: int32, int64,
// float64, decimal.Decimal, time.Time, time.Duration, uuid.UUID, []byte and
// so on (see primitive.KindEnum.ReflectType). Struct values are *Instance,
// sequences are []any.
package caster
