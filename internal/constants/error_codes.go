package constants

// Engine and service error codes. Rule-table integrity failures indicate a
// defect in the table data, not a caller error.
const (
	ErrCodeRuleTableIntegrity = "RULE_TABLE_INTEGRITY"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeWrongFleet         = "WRONG_FLEET"
	ErrCodeNoMatch            = "NO_MATCH"
	ErrCodeAmbiguousMatch     = "AMBIGUOUS_MATCH"
	ErrCodeStorageFailure     = "STORAGE_FAILURE"
	ErrCodeAirportUnknown     = "AIRPORT_UNKNOWN"
)

var errorMessages = map[string]string{
	ErrCodeRuleTableIntegrity: "Rule table is missing a required entry. This is a data defect, not a request problem.",
	ErrCodeInvalidInput:       "Request contains invalid or unparseable fields.",
	ErrCodeWrongFleet:         "This calculation applies to a different fleet.",
	ErrCodeNoMatch:            "No matching record found.",
	ErrCodeAmbiguousMatch:     "More than one record matched; refusing to guess.",
	ErrCodeStorageFailure:     "Storage operation failed.",
	ErrCodeAirportUnknown:     "Airport code could not be resolved.",
}

// GetErrorMessage returns the human-readable message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
