// Defines constants representing the types of errors a ledger node
// may return to a client, and the results of the client's checks
// on a node's messages.

package protocol

// An ErrorCode is a message error code, or the result of a
// verification check run on a message.
type ErrorCode int

// Request errors.
const (
	ReqSuccess ErrorCode = iota + 10
	ReqUnknownLedger

	ErrMalformedMessage
	ErrAuditLog
	ErrInternal
)

// Check results.
const (
	CheckPassed ErrorCode = iota + 200
	CheckBadCheckpoint
	CheckBadConsistency
	CheckBadInclusion
	CheckHashMismatch
)

var (
	// Errors contains the codes that mean a message could not be
	// processed at all, as opposed to a message that failed a check.
	Errors = map[ErrorCode]bool{
		ErrMalformedMessage: true,
		ErrAuditLog:         true,
		ErrInternal:         true,
	}

	errorMessages = map[ErrorCode]string{
		ReqSuccess:       "[ledger] Successful request",
		ReqUnknownLedger: "[ledger] Unknown ledger",

		ErrMalformedMessage: "[ledger] Malformed message",
		ErrAuditLog:         "[ledger] Audit log error",
		ErrInternal:         "[ledger] Internal error",

		CheckPassed:         "[ledger] Consistency checks passed",
		CheckBadCheckpoint:  "[ledger] Checkpoint is older than the trusted one or conflicts with it",
		CheckBadConsistency: "[ledger] Consistency proof does not link the checkpoints",
		CheckBadInclusion:   "[ledger] Audit path does not prove the transaction",
		CheckHashMismatch:   "[ledger] Hash algorithm does not match the ledger's",
	}
)

// Error returns the message of the code.
func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}
	return errorMessages[ErrInternal]
}
