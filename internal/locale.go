package internal

import "os"

// skipPlatformLocale can be set to true in tests to skip OS-level locale detection
var skipPlatformLocale = false

// systemLocale returns the locale used to guess a currency.
// LC_MONETARY is the most specific hint, then LC_ALL, then LANG.
// "C" and "POSIX" carry no region and are ignored.
func systemLocale() string {
	for _, envVar := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	if skipPlatformLocale {
		return ""
	}
	return platformLocale()
}
