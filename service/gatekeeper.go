package service

import (
	"encoding/json"
)

// NotAContractSentinel is the value the engine reports in
// summary.contract_type_detected when the uploaded document is not a
// contract at all.
const NotAContractSentinel = "NOT_A_CONTRACT"

const defaultRejectionMessage = "The uploaded file is not a valid contract document."

// NotAContractError rejects an orchestration call whose document the
// engine identified as not being a contract. It is the only engine-side
// failure that propagates to the caller instead of being embedded in
// the result payload.
type NotAContractError struct {
	Message string
}

func (e *NotAContractError) Error() string {
	return e.Message
}

// CheckContract inspects sanitized engine output for the not-a-contract
// sentinel. Output that does not parse as JSON passes through untouched;
// the check is permissive by design.
func CheckContract(clean string) error {
	var payload struct {
		Summary struct {
			ContractTypeDetected string `json:"contract_type_detected"`
			OverallComment       string `json:"overall_comment"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil
	}

	if payload.Summary.ContractTypeDetected == NotAContractSentinel {
		message := payload.Summary.OverallComment
		if message == "" {
			message = defaultRejectionMessage
		}
		return &NotAContractError{Message: message}
	}

	return nil
}
