package types

// builtinPackages maps a loadable package name to the values it predeclares.
// A project's package list selects which of these enter the environment.
var builtinPackages = map[string]map[string]Type{
	"stdio": {
		"print":       &Arrow{From: String, To: Unit},
		"print_int":   &Arrow{From: Int, To: Unit},
		"print_float": &Arrow{From: Float, To: Unit},
		"read_line":   &Arrow{From: Unit, To: String},
	},
	"math": {
		"pi":    Float,
		"sqrt":  &Arrow{From: Float, To: Float},
		"floor": &Arrow{From: Float, To: Int},
		"float": &Arrow{From: Int, To: Float},
	},
	"str": {
		"length":    &Arrow{From: String, To: Int},
		"uppercase": &Arrow{From: String, To: String},
		"lowercase": &Arrow{From: String, To: String},
	},
}

// KnownPackage reports whether name is a loadable package.
func KnownPackage(name string) bool {
	_, ok := builtinPackages[name]
	return ok
}
