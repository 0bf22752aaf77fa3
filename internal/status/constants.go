// internal/status/constants.go
package status

// Status values published in the remote document.
// These values are read by dashboards and MUST NOT be configurable.

// Code is the coarse liveness projection of the last tick.
type Code string

// ---- STATUS CODES ----

// Unknown is the boot state before the first tick completes.
// It is never published.
const Unknown Code = ""

// Online means the last tick read the block and replaced the document.
const Online Code = "ONLINE"

// Error means the controller answered but the response was unusable.
const Error Code = "ERROR"

// Offline means the controller could not be reached.
const Offline Code = "OFFLINE"

// ---- DOCUMENT FIELDS ----

// FieldStatus is the document field holding the Code.
const FieldStatus = "status"

// FieldLastUpdated is the document field holding the assembly timestamp.
const FieldLastUpdated = "last_updated"

func (c Code) String() string {
	if c == Unknown {
		return "UNKNOWN"
	}
	return string(c)
}
