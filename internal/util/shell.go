// Package util provides common utility functions used across the codebase.
package util

import "strings"

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
// This is safe for use in shell commands where the string should be treated literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// QuoteArg quotes s only when the shell would otherwise interpret it.
// Words made of letters, digits and @%+=:,./_- are returned unchanged.
func QuoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, isUnsafeShellRune) == -1 {
		return s
	}
	return ShellQuote(s)
}

// JoinArgs quotes each argument with QuoteArg and joins them with spaces.
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteArg(a)
	}
	return strings.Join(quoted, " ")
}

func isUnsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("@%+=:,./_-", r)
}
