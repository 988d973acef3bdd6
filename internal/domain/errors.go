package domain

// NoExchangeError is returned when a requested exchange does not exist.
type NoExchangeError struct{}

func (e NoExchangeError) Error() string {
	return "no matching exchange found"
}

func IsNoExchangeError(err error) bool {
	_, ok := err.(NoExchangeError)
	return ok
}
