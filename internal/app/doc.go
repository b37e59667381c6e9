// Package app provides the application service layer.
//
// Orchestrates the fetch pipeline: cooldown admission, in-flight gating,
// source fetch, normalization, classification, and the derived views
// (sentiment counts, top keywords, export rows). Sits between HTTP
// handlers and the domain components and depends on domain interfaces,
// not concrete implementations.
package app
