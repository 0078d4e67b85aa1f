// Package descriptor declares record types for fixture generation.
//
// Instead of reflecting over struct fields at runtime, each record type is
// registered once with an explicit, ordered field list and its canonical
// constructor. The generator only ever sees these descriptors, which keeps
// rule matching a closed dispatch over a fixed set of kinds and lets the
// compiler check every constructor.
//
// Values travel through descriptors in a small dynamic convention: integers
// are int64, floats are float64, collections are []any and map[any]any, and
// absent optionals are untyped nil. Constructors translate that convention
// into the concrete record type.
package descriptor
