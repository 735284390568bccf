package sheetgrid

// ConnectionState is how far a Client has been set up. Transitions only
// move forward; connecting a new document drops back to HasDocument.
type ConnectionState int

const (
	NoClient ConnectionState = iota
	HasClient
	HasDocument
	HasSheet
)

func (s ConnectionState) String() string {
	switch s {
	case NoClient:
		return "no client"
	case HasClient:
		return "client ready"
	case HasDocument:
		return "document ready"
	case HasSheet:
		return "sheet ready"
	default:
		return "unknown"
	}
}

// require returns a SetupError naming the first precondition of min that
// s does not meet
func (s ConnectionState) require(min ConnectionState) error {
	switch {
	case min >= HasClient && s < HasClient:
		return &SetupError{Reason: "client has not been initialised"}
	case min >= HasDocument && s < HasDocument:
		return &SetupError{Reason: "document has not been connected"}
	case min >= HasSheet && s < HasSheet:
		return &SetupError{Reason: "sheet within document has not been connected"}
	}
	return nil
}
