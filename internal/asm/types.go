package main

// Stand-ins for the types in the root package, so that the generated
// function stubs have the right signatures.
//
// nolint: unused
type (
	affinePoint  struct{}
	affinePoint2 struct{}
)
