package errors

import "strings"

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// messages are joined together and the first error code found is used as the
// code of the result.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
			continue
		case multiError:
			res = append(res, e...)
		default:
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type multiError []error

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Cause returns the first error of the collection. It is the dominating
// error of this set and decides the classification.
func (e multiError) Cause() error {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// Contains returns true if any of the grouped errors matches the given
// class.
func (e multiError) Contains(kind *Error) bool {
	for _, err := range e {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
