// Package translation answers translation requests. A request is first
// looked up in the project and global dictionaries; only on a miss, and only
// when automatic translation is enabled, the configured provider is asked
// and its answer is recorded in the dictionaries. Recorded translations are
// written to disk by SaveDictionary.
package translation
