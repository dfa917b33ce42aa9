package service

// AuthenticationError reports a credential that could not be verified.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// BusinessRuleError reports a request that violates a domain rule, such as a duplicate email.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

const (
	msgUserNotFound       = "user not found for given email"
	msgInvalidPassword    = "invalid password"
	msgEmailAlreadyExists = "email already registered"
)

func authError(msg string) error { return &AuthenticationError{Message: msg} }

func ruleError(msg string) error { return &BusinessRuleError{Message: msg} }
