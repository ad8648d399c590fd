// Package changelog implements the core generation pipeline: classifying
// commits by conventional-commit type, grouping them into version buckets,
// and rendering markdown, terminal, and YAML representations.
//
// The pipeline is a single linear pass over an immutable commit snapshot:
// classify -> group -> render. Nothing here touches the repository; raw
// commits come from the gitlog package.
package changelog
