// Package phonetic transliterates vowelized Hebrew text into an Ashkenazi
// phonetic string. The conversion is a fixed sequence of ordered
// substitution tables and has no state, so every function here is safe for
// concurrent use.
package phonetic
