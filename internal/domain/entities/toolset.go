package entities

// ToolSet holds resolved absolute paths to the external signing tools.
// Resolution happens once per run; every path is expected to be invocable.
type ToolSet struct {
	ZipAlign  string
	ApkSigner string
	JarSigner string
}
