package httperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindQuotaExceeded
	KindScheduleUnavailable
	KindSlotConflict
	KindGatewayFailure
	KindAlreadyProcessed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation_failed"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindScheduleUnavailable:
		return "schedule_unavailable"
	case KindSlotConflict:
		return "slot_conflict"
	case KindGatewayFailure:
		return "gateway_failure"
	case KindAlreadyProcessed:
		return "already_processed"
	default:
		return "unknown"
	}
}

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func NotFoundErr(code string) error            { return BusinessError{Kind: KindNotFound, Code: code} }
func ForbiddenErr(code string) error           { return BusinessError{Kind: KindForbidden, Code: code} }
func ValidationErr(code string) error          { return BusinessError{Kind: KindValidation, Code: code} }
func QuotaExceededErr(code string) error       { return BusinessError{Kind: KindQuotaExceeded, Code: code} }
func ScheduleUnavailableErr(code string) error { return BusinessError{Kind: KindScheduleUnavailable, Code: code} }
func SlotConflictErr(code string) error        { return BusinessError{Kind: KindSlotConflict, Code: code} }
func GatewayFailureErr(code string) error      { return BusinessError{Kind: KindGatewayFailure, Code: code} }
func AlreadyProcessedErr(code string) error    { return BusinessError{Kind: KindAlreadyProcessed, Code: code} }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}
