// Package discovery builds and runs the external find invocation that
// locates candidate video files, and parses its line-oriented output.
//
// The actual process execution sits behind the Executor interface so the
// pipeline can be exercised without spawning a shell.
package discovery
