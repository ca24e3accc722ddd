// Package textutil cleans up tag values before they are compared.
//
// StripRepeated collapses names that taggers duplicated ("Rossini, G.,
// Rossini, G."), built on LongestRepeat, which finds the longest substring
// occurring twice without overlap. FoldKey produces case-insensitive,
// whitespace-normalized keys for caches.
package textutil
