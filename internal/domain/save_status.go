package domain

// SaveState is the state of the save indicator shown while remote writes are in flight
type SaveState string

const (
	SaveError  SaveState = "error"
	SaveIdle   SaveState = "idle"
	SaveSaved  SaveState = "saved"
	SaveSaving SaveState = "saving"
)

// SaveStatus is the outcome of the most recent remote write attempt
type SaveStatus struct {
	Message string    `json:"message,omitempty"`
	Seq     uint64    `json:"seq"`
	State   SaveState `json:"state"`
}

// Symbol returns the indicator symbol for the save state
func (s SaveState) Symbol() string {
	switch s {
	case SaveSaving:
		return SymbolSaving
	case SaveSaved:
		return SymbolSaved
	case SaveError:
		return SymbolSaveError
	}
	return ""
}

// Save indicator symbols (Unicode)
const (
	SymbolSaveError = "✗" // Red - last write failed
	SymbolSaved     = "✓" // Green - last write succeeded
	SymbolSaving    = "●" // Yellow - write in flight
)
