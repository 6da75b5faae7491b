// Package rewriters provides implementations of the DocumentRewriter
// interface for document formats embedded in EPUB archives. Each
// rewriter knows how to apply the bionic emphasis rule to the text
// content of a specific format without disturbing its markup.
package rewriters
