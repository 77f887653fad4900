/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command docstore runs document store operations against the collections
// declared in a configuration file and prints results as JSON.
package main

func main() {
	Execute()
}
