// Package platform wraps the host services the property shell depends on:
// secure random bytes, heap statistics and conversion of paths to and from
// the UTF-16LE form some hosts store them in.
//
// Nothing in the property, listener or store packages imports platform.
package platform
