// Package fingerprint digests a build output tree and persists the digest
// in a side-file inside that tree.
package fingerprint
