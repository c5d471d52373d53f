// Package facts renders extracted relations into the two downstream text
// formats: predicate-logic facts for the BoostSRL learning engine and
// space-separated edge triples for Cytoscape network imports.
package facts

import "strings"

// Predicate renders a fact line such as liked("123","1335"). Whitespace is
// stripped from the predicate name and every argument, since the consumer
// treats spaces as token separators.
func Predicate(pred string, args ...string) string {
	var sb strings.Builder
	sb.WriteString(strip(pred))
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strip(a))
		sb.WriteByte('"')
	}
	sb.WriteString(").")
	return sb.String()
}

// Cytoscape renders a "node1 relation node2" edge. Cytoscape reads the line
// as three space-separated columns, so whitespace inside each token is
// stripped rather than escaped.
func Cytoscape(rel, node1, node2 string) string {
	return strip(node1) + " " + strip(rel) + " " + strip(node2)
}

func strip(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
