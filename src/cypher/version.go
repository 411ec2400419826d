package cypher

// LibraryVersion is overridden at build time with -ldflags "-X".
var LibraryVersion = "dev"

// Version returns the current version of cypherkit
func Version() string {
	return LibraryVersion
}
