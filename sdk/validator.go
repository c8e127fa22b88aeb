package sdk

// Validator is implemented by inputs that can check their own fields before use.
type Validator interface {
	Validate() error
}
