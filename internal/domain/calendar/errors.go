package calendar

import "errors"

// ErrNotFound é devolvido pelos stores quando o registro não existe.
var ErrNotFound = errors.New("record not found")
