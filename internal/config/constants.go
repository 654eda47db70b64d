package config

// Version is the current TreeP toolchain version.
var Version = "0.1.0"

const SourceFileExt = ".tp"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".tp", ".treep"}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Built-in function names, seeded into both the HM type environment and
// the runtime's global Environment.
const (
	PrintlnFuncName  = "println"
	ToStringFuncName = "toString"
	ErrorFuncName    = "error"
)
