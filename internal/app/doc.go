// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: load a document,
// apply the requested updates, then print one render, serve the document to
// socket.io clients, or watch a running server.
package app
