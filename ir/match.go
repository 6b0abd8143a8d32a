package ir

import "fmt"

// Cases handles every Variable node type. Implementations that miss a node
// type do not satisfy the interface, so adding a node breaks every renderer
// at compile time until it is handled.
type Cases[T any] interface {
	VisitString(*String) T
	VisitDate(*Date) T
	VisitNumber(*Number) T
	VisitBoolean(*Boolean) T
	VisitArray(*Array) T
	VisitObject(*Object) T
	VisitRef(*Ref) T
}

// Match dispatches v to the case for its node type.
func Match[T any](v Variable, c Cases[T]) T {
	switch n := v.(type) {
	case *String:
		return c.VisitString(n)
	case *Date:
		return c.VisitDate(n)
	case *Number:
		return c.VisitNumber(n)
	case *Boolean:
		return c.VisitBoolean(n)
	case *Array:
		return c.VisitArray(n)
	case *Object:
		return c.VisitObject(n)
	case *Ref:
		return c.VisitRef(n)
	}
	// unreachable: the variable() marker is unexported
	panic(fmt.Sprintf("ir: unknown variable node %T", v))
}

// SchemaCases handles both root schema forms.
type SchemaCases[T any] interface {
	VisitObjectSchema(*Properties) T
	VisitComposite(*Composite) T
}

// MatchSchema dispatches a root schema.
func MatchSchema[T any](s Schema, c SchemaCases[T]) T {
	switch n := s.(type) {
	case *Properties:
		return c.VisitObjectSchema(n)
	case *Composite:
		return c.VisitComposite(n)
	}
	panic(fmt.Sprintf("ir: unknown schema node %T", s))
}

// SubCases handles both composite member forms.
type SubCases[T any] interface {
	VisitObjectSchema(*Properties) T
	VisitRef(*Ref) T
}

// MatchSub dispatches a composite member.
func MatchSub[T any](s SubSchema, c SubCases[T]) T {
	switch n := s.(type) {
	case *Properties:
		return c.VisitObjectSchema(n)
	case *Ref:
		return c.VisitRef(n)
	}
	panic(fmt.Sprintf("ir: unknown sub-schema node %T", s))
}
