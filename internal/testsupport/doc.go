// Package testsupport holds helpers shared by package tests: temp-dir backed
// configuration, catalog fixtures and file writers.
package testsupport
