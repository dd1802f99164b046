// Command genexport writes a synthetic Facebook export document for local
// testing, e.g. to feed fbingest -local.
package main

import (
	"flag"
	"log"
	"os"

	"fbingest/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 100, "Number of posts to generate")
	numComments := flag.Int("comments", 50, "Number of comments to generate")
	orphans := flag.Int("orphans", 0, "Number of comments referencing missing posts")
	out := flag.String("out", "export.json", "Output file path")
	flag.Parse()

	doc := seed.Document(seed.Options{
		Posts:          *numPosts,
		Comments:       *numComments,
		OrphanComments: *orphans,
	})

	raw, err := seed.Marshal(doc)
	if err != nil {
		log.Fatalf("failed to render export: %v", err)
	}

	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}

	log.Printf("Wrote %d posts and %d comments to %s", len(doc.Posts), len(doc.Comments), *out)
}
