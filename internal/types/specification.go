package types

// Specification is a composable, storage-independent predicate over a domain
// object. Repositories may translate well-known specifications into queries;
// in-memory implementations just evaluate them.
type Specification[T any] interface {
	IsSatisfiedBy(candidate T) bool
}

// SpecificationFunc adapts a plain predicate to a Specification.
type SpecificationFunc[T any] func(candidate T) bool

func (f SpecificationFunc[T]) IsSatisfiedBy(candidate T) bool {
	return f(candidate)
}

// And is satisfied when all given specifications are.
func And[T any](specs ...Specification[T]) Specification[T] {
	return SpecificationFunc[T](func(candidate T) bool {
		for _, spec := range specs {
			if !spec.IsSatisfiedBy(candidate) {
				return false
			}
		}
		return true
	})
}

// Or is satisfied when any given specification is.
func Or[T any](specs ...Specification[T]) Specification[T] {
	return SpecificationFunc[T](func(candidate T) bool {
		for _, spec := range specs {
			if spec.IsSatisfiedBy(candidate) {
				return true
			}
		}
		return false
	})
}

// Not inverts a specification.
func Not[T any](spec Specification[T]) Specification[T] {
	return SpecificationFunc[T](func(candidate T) bool {
		return !spec.IsSatisfiedBy(candidate)
	})
}
