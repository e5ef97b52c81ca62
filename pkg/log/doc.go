// Package log defines the minimal structured logging surface used by the
// pushship library. The library itself stays silent by default (NewNoop);
// callers that want output wrap a zerolog logger with NewZerolog or provide
// their own Logger implementation.
package log
