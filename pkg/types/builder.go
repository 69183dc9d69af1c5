package types

// BuilderKind names the build backend of a configuration
type BuilderKind string

const (
	// BuilderMakefile runs the declared build command directly
	BuilderMakefile BuilderKind = "makefile"

	// BuilderCubeIDE drives a headless STM32CubeIDE build
	BuilderCubeIDE BuilderKind = "stm32_cube_ide"
)

// Valid reports whether the kind has a known execution strategy
func (k BuilderKind) Valid() bool {
	switch k {
	case BuilderMakefile, BuilderCubeIDE:
		return true
	}
	return false
}

// BuilderKinds lists every supported builder kind
func BuilderKinds() []BuilderKind {
	return []BuilderKind{BuilderMakefile, BuilderCubeIDE}
}
