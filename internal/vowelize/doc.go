// Package vowelize adds niqqud to raw Hebrew text by calling an external
// diacritization service. The transliteration rules only act on marks, so
// text must pass through a Vowelizer before it reaches the phonetic
// package.
package vowelize
