// Package main implements the prefs command-line tool, a thin operational
// surface over a directory-backed prefstore for inspecting and editing
// namespaces from scripts and shells.
//
// The tool maps one subcommand to one namespace-store operation:
//
//	┌─────────────────────────────────────────┐
//	│                 prefs                    │
//	├─────────────────────────────────────────┤
//	│  Subcommands:                           │
//	│    get KEY      - Resolve a value       │
//	│    set KEY VAL  - Buffer + save a value │
//	│    del KEY      - Remove a key          │
//	│    has KEY      - Test key presence     │
//	│    keys         - List namespace keys   │
//	│    clear        - Empty the namespace   │
//	├─────────────────────────────────────────┤
//	│  Storage: one file per field under      │
//	│  --dir, written atomically via rename   │
//	└─────────────────────────────────────────┘
//
// Configuration:
//   - --dir: Root directory for the backing store (default: ~/.prefstore)
//   - --namespace: Namespace to operate on (default: "default")
//   - --type: Value type for get/set (default: "string")
//   - --config: Optional YAML file supplying dir/namespace defaults
//   - --verbose: Log store operations to stderr
//
// Example usage:
//
//	# Store a typed value
//	prefs set --namespace profile --type int32 level 5
//
//	# Read it back, with a default for the missing case
//	prefs get --namespace profile --type int32 --default -1 level
//
//	# Inspect the namespace
//	prefs keys --namespace profile
package main

import (
	"log"
	"os"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
// This indirection enables test code to intercept fatal errors
// without actually terminating the test process.
var logFatal = log.Fatalf

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		logFatal("prefs: %v", err)
	}
}
