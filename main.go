// Package main is the entry point for the sf6metrics CLI tool, which turns a
// stored SF6 match log into per-player analytics reports.
package main

import "github.com/zach-king-analytics/sf6-metrics/cmd"

func main() {
	cmd.Execute()
}
