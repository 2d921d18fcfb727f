package url

import "strconv"

// UnsupportedSchemeError is returned by [Parse] for a "scheme://" address
// whose scheme is not one of http, https or file.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return "unsupported URL scheme: " + e.Scheme
}

type InvalidPortError struct {
	Port string
	Err  error // nil when the port parsed but is out of range
}

func (e *InvalidPortError) Error() string {
	msg := "invalid port " + strconv.Quote(e.Port)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidPortError) Unwrap() error {
	return e.Err
}

type InvalidHostError string

func (e InvalidHostError) Error() string {
	return "invalid host: " + string(e)
}
