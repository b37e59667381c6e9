// Package domain defines the core types shared across the application:
// content sources, normalized items, sentiment buckets, and the error
// taxonomy of the fetch pipeline. It depends on nothing but the standard
// library; all other packages depend on it.
package domain
