package sjava

// Type is one of the five s-Java primitive types.
type Type int

const (
	InvalidType Type = iota
	Int
	Double
	Boolean
	Char
	String
)

var typeNames = map[Type]string{
	Int:     "int",
	Double:  "double",
	Boolean: "boolean",
	Char:    "char",
	String:  "String",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "invalid"
}

// IsValid reports whether t names a declarable type.
func (t Type) IsValid() bool {
	return t != InvalidType
}

// IsConditional reports whether values of t may appear in an if/while guard.
func (t Type) IsConditional() bool {
	return t == Boolean || t == Int || t == Double
}

// ParseType maps a type keyword to its Type. Unknown keywords yield InvalidType.
func ParseType(s string) Type {
	switch s {
	case "int":
		return Int
	case "double":
		return Double
	case "boolean":
		return Boolean
	case "char":
		return Char
	case "String":
		return String
	}
	return InvalidType
}

// IsPrimitiveType checks if name is one of the type keywords.
func IsPrimitiveType(name string) bool {
	return ParseType(name).IsValid()
}

// IsReservedWord reports whether name is a keyword that cannot be used as
// a variable or method name.
func IsReservedWord(name string) bool {
	switch name {
	case "int", "double", "boolean", "char", "String",
		"void", "final", "if", "while", "true", "false", "return":
		return true
	}
	return false
}
