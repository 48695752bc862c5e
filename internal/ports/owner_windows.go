//go:build windows

package ports

// procOwner has no /proc to consult on Windows; the Unix fallback chain that
// needs it never runs here.
func procOwner(int) string {
	return UnknownUser
}
