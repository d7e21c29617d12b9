// Package main is the entry point for the txkv command-line store.
package main

func main() {
	Execute()
}
