// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Every Node keeps the path of the file it was declared in, so that document
// errors and log lines can point at the source file even after blocks from
// several files are merged under one root.
package model

// FSInfo records where a node was loaded from.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates FSInfo for filePath.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}
