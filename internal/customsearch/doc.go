// Package customsearch is a minimal client for the Google Programmable Search
// (Custom Search JSON) API.
//
// Each call authenticates with the key and engine id of one credential and
// returns the response status together with the result links, leaving quota
// handling to the search dispatcher.
package customsearch
