package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Extraction
	ErrorCode_EXTRACTION_FAILED      ErrorCode = 2000
	ErrorCode_TRANSCRIPT_EMPTY       ErrorCode = 2001
	ErrorCode_TRANSCRIPT_TOO_LONG    ErrorCode = 2002
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 2003

	// Transcription
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 3000
	ErrorCode_RECORDING_UPLOAD_FAIL ErrorCode = 3001
	ErrorCode_MISSING_RECORDING     ErrorCode = 3002

	// Database
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 4000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 4001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                "OK",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:       "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:        "INVALID_PAYLOAD",
	ErrorCode_EXTRACTION_FAILED:      "EXTRACTION_FAILED",
	ErrorCode_TRANSCRIPT_EMPTY:       "TRANSCRIPT_EMPTY",
	ErrorCode_TRANSCRIPT_TOO_LONG:    "TRANSCRIPT_TOO_LONG",
	ErrorCode_AI_SERVICE_UNAVAILABLE: "AI_SERVICE_UNAVAILABLE",
	ErrorCode_TRANSCRIPTION_FAILED:   "TRANSCRIPTION_FAILED",
	ErrorCode_RECORDING_UPLOAD_FAIL:  "RECORDING_UPLOAD_FAIL",
	ErrorCode_MISSING_RECORDING:      "MISSING_RECORDING",
	ErrorCode_DB_QUERY_FAILED:        "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:  "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
