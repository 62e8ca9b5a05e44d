package validation

// Kind tags the three possible answers of a validation call.
type Kind int

const (
	// KindUnavailable means no definitive answer could be obtained.
	// It is the zero value so an unset Outcome never reads as Found.
	KindUnavailable Kind = iota
	KindFound
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Outcome is the result of validating one entity against a remote dependency.
// Value is meaningful only for KindFound and Reason only for KindUnavailable.
type Outcome[T any] struct {
	Kind   Kind
	Value  T
	Reason string
}

// Found wraps a definitive positive answer.
func Found[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: KindFound, Value: v}
}

// NotFound is a definitive negative answer.
func NotFound[T any]() Outcome[T] {
	return Outcome[T]{Kind: KindNotFound}
}

// Unavailable reports that the dependency gave no definitive answer.
func Unavailable[T any](reason string) Outcome[T] {
	return Outcome[T]{Kind: KindUnavailable, Reason: reason}
}

func (o Outcome[T]) IsFound() bool       { return o.Kind == KindFound }
func (o Outcome[T]) IsNotFound() bool    { return o.Kind == KindNotFound }
func (o Outcome[T]) IsUnavailable() bool { return o.Kind == KindUnavailable }

// definitive reports whether the dependency answered, either way.
func (o Outcome[T]) definitive() bool {
	return o.Kind == KindFound || o.Kind == KindNotFound
}
