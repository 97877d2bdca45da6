// Package process contains platform-specific process tree cleanup used
// when tearing down the browser.
package process
