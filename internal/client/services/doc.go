// Package services contains client services built on top of the local
// key-value storage that are not part of the warranty store itself.
package services
