// Package mmap provides read-only memory-mapped file access.
//
//	f, err := mmap.Open("model.kmns")
//	if err != nil { ... }
//	defer f.Close()
//
//	data := f.Bytes() // valid until Close
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) via golang.org/x/sys/unix
//   - Windows: CreateFileMapping/MapViewOfFile
//
// Empty files are not mapped; Bytes returns nil for them.
package mmap
