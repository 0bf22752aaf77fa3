// internal/status/encode.go
package status

// Encode converts a Code into the partial document update used on failure ticks.
// Only the status field is present; numeric fields stay untouched remotely.
// No IO. No side effects.
func Encode(c Code) map[string]interface{} {
	return map[string]interface{}{
		FieldStatus: string(c),
	}
}
