package res

type ErrorRes struct {
	Err        error
	StatusCode int
}

func (e *ErrorRes) Error() string {
	return e.Err.Error()
}

func (e *ErrorRes) Unwrap() error {
	return e.Err
}
