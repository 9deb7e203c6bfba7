// Package report turns cluster lists into console output.
//
// [Build] derives one [Entry] per threshold cluster: its files and the
// imports shared along edges inside the cluster. A [Summary] bundles the
// entries with both partitions and graph statistics, and is written with
// [WriteText] for people or [WriteJSON] for tools.
package report
