package attacks

// init builds every attack table exactly once, before any Position or
// Search exists, matching the "initialize-once singleton" pattern the rest
// of the engine uses for process-global, read-only lookup tables.
func init() {
	buildLeapers()
	if err := buildMagics(); err != nil {
		panic(err)
	}
}
