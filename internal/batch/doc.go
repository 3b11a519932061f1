// Package batch drives repair over scene files: the single-file pipeline
// (load, repair, preflight, write, journal) and a directory runner that
// applies it to every .gltf file found, isolating per-file failures.
//
// The runner holds an exclusive lock file inside the target directory so
// two batch passes never process the same file concurrently. Individual
// files need no locking: each run touches only its own input and output
// paths.
package batch
