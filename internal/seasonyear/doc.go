// Package seasonyear rolls the hardcoded season year of the team site
// forward. A Plan is a fixed list of literal string replacements grouped in
// steps; each step targets one file under the site root.
package seasonyear
