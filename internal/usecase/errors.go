package usecase

// DomainError is a business-rule failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (database, queue, transport).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func companyNotFound(companyID string) *DomainError {
	return &DomainError{Code: "COMPANY_NOT_FOUND", Message: "company not found: " + companyID}
}

func campaignNotFound(campaignID string) *DomainError {
	return &DomainError{Code: "CAMPAIGN_NOT_FOUND", Message: "campaign not found: " + campaignID}
}

func leadNotFound(leadID string) *DomainError {
	return &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found: " + leadID}
}
