package split

import "strings"

// Method is the way an expense total is divided between its participants.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodExact      Method = "exact"
	MethodPercentage Method = "percentage"
)

var methods = []Method{MethodEqual, MethodExact, MethodPercentage}

// Methods returns every supported method in a stable order.
func Methods() []Method {
	result := make([]Method, len(methods))
	copy(result, methods)
	return result
}

func (m Method) Valid() bool {
	switch m {
	case MethodEqual, MethodExact, MethodPercentage:
		return true
	}
	return false
}

func (m Method) String() string {
	return string(m)
}

// ParseMethod normalizes value and returns the matching method.
func ParseMethod(value string) (Method, error) {
	method := Method(strings.ToLower(strings.TrimSpace(value)))
	if !method.Valid() {
		return "", invalid(ErrInvalidMethod)
	}
	return method, nil
}
