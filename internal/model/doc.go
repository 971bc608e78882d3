// Package model defines the resolved binding model: the immutable
// output of the compiler that the serializer/deserializer runtime
// consumes. Everything here is constructed during one resolution pass
// and only ever read afterwards.
package model
