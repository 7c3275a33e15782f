/*
Package utils contains decorators that are useful for every transaction
handler stack: panic recovery, logging, savepoints and tagging.
*/
package utils
