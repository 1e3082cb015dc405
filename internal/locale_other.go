//go:build !windows && !darwin

package internal

// platformLocale has nothing beyond the environment on Unix-like systems
func platformLocale() string {
	return ""
}
